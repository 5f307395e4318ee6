/*
Package export produces one-shot, read-only snapshots of the check
collection: a flat delimited table and a structured full-state dump.
*/
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strconv"

	"github.com/daftar/check-engine/check"
)

// Columns is the fixed column order of the CSV table.
var Columns = []string{
	"id", "type", "seriesId", "index", "ref", "buyer", "phone",
	"principal", "rate", "startDate", "endDate", "amount", "code",
	"label", "note", "status", "extraDays", "extraProfit", "monthlyProfit",
}

// CSV renders every check as one row under the fixed header.
func CSV(s check.State) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(Columns); err != nil {
		return nil, err
	}
	for _, c := range s.Checks {
		row := []string{
			c.ID,
			string(c.Kind),
			c.SeriesID,
			strconv.Itoa(c.Seq),
			c.Referrer,
			c.Buyer,
			c.Phone,
			strconv.FormatInt(c.Principal, 10),
			c.Rate.String(),
			c.Start.String(),
			c.End.String(),
			c.Amount.String(),
			c.Code,
			c.Label,
			c.Note,
			string(c.Status),
			strconv.Itoa(c.ExtraDays),
			c.ExtraProfit.String(),
			c.MonthlyProfit.String(),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// JSON renders the full state as an indented structured dump.
func JSON(s check.State) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}
