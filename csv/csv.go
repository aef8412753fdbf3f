// Package csv reads company records from and writes discovered contacts to
// CSV files, the pipeline's import and export edges.
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	sysiphe "github.com/Holyblitz/Sysiphe-v2"
)

// nameColumns are the accepted header names for the company name, in
// preference order. Headers are matched case-insensitively.
var nameColumns = []string{"legal_name", "business_name", "name"}

// ReadTargets parses company records from r. The first row is the header;
// only a name column is required, jurisdiction and known-domain columns are
// optional. Rows with an empty name are skipped.
func ReadTargets(r io.Reader) ([]*sysiphe.Target, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, sysiphe.Errorf(sysiphe.EINVALID, "csv input is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}

	nameIdx := -1
	for _, c := range nameColumns {
		if i, ok := cols[c]; ok {
			nameIdx = i
			break
		}
	}
	if nameIdx < 0 {
		return nil, sysiphe.Errorf(sysiphe.EINVALID,
			"csv header has no name column (expected one of %s)",
			strings.Join(nameColumns, ", "))
	}

	field := func(record []string, col string) string {
		i, ok := cols[col]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var targets []*sysiphe.Target
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}

		name := strings.TrimSpace(record[nameIdx])
		if name == "" {
			continue
		}
		targets = append(targets, &sysiphe.Target{
			Name:        name,
			KnownDomain: field(record, "known_domain"),
			State:       field(record, "state"),
			Postcode:    field(record, "postcode"),
		})
	}
	return targets, nil
}

// WriteContacts writes outcomes as a CSV report. The target name column is
// resolved through names, keyed by target ID; unknown IDs get an empty name.
func WriteContacts(w io.Writer, outcomes []*sysiphe.Outcome, names map[string]string) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{
		"target_id", "name", "status", "domain", "email",
		"confidence", "source_url", "query", "checked_at",
	}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, o := range outcomes {
		record := []string{
			o.TargetID,
			names[o.TargetID],
			string(o.Status),
			o.Domain,
			o.Email,
			strconv.Itoa(o.Confidence),
			o.SourceURL,
			o.Query,
			o.CheckedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
