// Package comdinheiro fetches daily series from the Comdinheiro API.
//
// The HistoricoCotacao002 tool returns a transposed table: one row per
// instrument, one column per date, values formatted in the Brazilian locale.
// This package pivots that into a RawFrame and leaves every value as the raw
// vendor token: the core normalizer owns numeric interpretation.
package comdinheiro

import (
	"fmt"
	"log"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/vbessa/weeklyperf"
	"github.com/vbessa/weeklyperf/date"
)

const endpoint = "https://www.comdinheiro.com.br/Clientes/API/EndPoint001.php?code=import_data"

// Client holds the API credentials.
type Client struct {
	Username string
	Password string
}

// FetchHistory retrieves the daily history of the given vendor identifiers
// between from and to, inclusive.
func (c *Client) FetchHistory(instruments []string, from, to date.Date) (*weeklyperf.RawFrame, error) {
	if c.Username == "" || c.Password == "" {
		return nil, fmt.Errorf("comdinheiro credentials are not set")
	}

	tool := fmt.Sprintf("HistoricoCotacao002.php?&x=%s&data_ini=%s&data_fim=%s&pagina=1&d=MOEDA_ORIGINAL&g=1&m=0&info_desejada=retorno_percentual&retorno=discreto",
		url.QueryEscape(strings.Join(instruments, "+")), dateArg(from), dateArg(to))

	form := url.Values{}
	form.Set("username", c.Username)
	form.Set("password", c.Password)
	form.Set("URL", tool)
	form.Set("format", "json3")

	var jobj any
	if err := jpost(newDailyCachingClient(), endpoint, form, &jobj); err != nil {
		return nil, fmt.Errorf("comdinheiro request failed: %w", err)
	}
	return parseTables(jobj)
}

// dateArg formats a date as the ddmmyyyy argument the tool expects.
func dateArg(d date.Date) string {
	return fmt.Sprintf("%02d%02d%04d", d.Day(), int(d.Month()), d.Year())
}

// parseTables locates the payload table and pivots it into a frame.
//
// json3 nests the table under tables.tab1 or, for single-table responses,
// tables.tab0. Rows are keyed lin0..linN and cells col0..colM; lin0 is the
// header carrying dd/mm/yyyy dates from col1 on, and each following row
// starts with the instrument name.
func parseTables(jobj any) (*weeklyperf.RawFrame, error) {
	var table map[string]any
	for _, path := range []string{"$.tables.tab1", "$.tables.tab0"} {
		jval, err := jsonpath.Get(path, jobj)
		if err != nil {
			continue
		}
		// jsonpath is never clear about whether it returns a list of 1
		// answer or a single answer, unwrap if needed.
		if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
			jval = jlist[0]
		}
		if m, ok := jval.(map[string]any); ok {
			table = m
			break
		}
	}
	if table == nil {
		return nil, fmt.Errorf("response carries no table under tables.tab1 or tables.tab0")
	}

	lins := sortedKeys(table, "lin")
	if len(lins) < 2 {
		return nil, fmt.Errorf("table has %d rows, want a header and at least one instrument", len(lins))
	}

	header, ok := table[lins[0]].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("header row %q is not an object", lins[0])
	}
	cols := sortedKeys(header, "col")

	// Header cells from col1 on are dates; unparseable cells are dropped
	// with their whole column.
	var dates []date.Date
	var keep []string
	for _, col := range cols[1:] {
		d, err := date.ParseBR(cell(header, col))
		if err != nil {
			log.Printf("dropping column %s: %v", col, err)
			continue
		}
		dates = append(dates, d)
		keep = append(keep, col)
	}

	frame := weeklyperf.NewRawFrame("comdinheiro", dates)
	for _, lin := range lins[1:] {
		row, ok := table[lin].(map[string]any)
		if !ok {
			continue
		}
		name := cleanName(cell(row, "col0"))
		if name == "" {
			continue
		}
		values := make([]string, len(keep))
		for i, col := range keep {
			values[i] = cell(row, col)
		}
		if err := frame.AddColumn(name, values); err != nil {
			return nil, fmt.Errorf("in row %s: %w", lin, err)
		}
	}
	return frame, nil
}

// cleanName strips the "&"-separated junk the tool appends to identifiers.
func cleanName(s string) string {
	name, _, _ := strings.Cut(s, "&")
	return strings.TrimSpace(name)
}

func cell(row map[string]any, col string) string {
	s, _ := row[col].(string)
	return strings.TrimSpace(s)
}

// sortedKeys returns the keys with the given prefix, in numeric suffix order
// (lin0, lin1, ... lin10 rather than lexicographic).
func sortedKeys(m map[string]any, prefix string) []string {
	var keys []string
	for k := range m {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		a, _ := strconv.Atoi(keys[i][len(prefix):])
		b, _ := strconv.Atoi(keys[j][len(prefix):])
		return a < b
	})
	return keys
}
