package main

import (
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"animal-shelter/internal/domain/dashboard"
	"animal-shelter/internal/platform/httpclient"

	"github.com/spf13/cobra"
)

var queryFlags struct {
	server   string
	token    string
	typ      string
	breed    string
	gender   string
	ageMin   int
	ageMax   int
	page     int
	pageSize int
	sort     string
	search   string
	columns  string
}

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Consulta la tabla del dashboard de un servidor en marcha",
	Long: `query pide GET /api/table con los mismos filtros que la UI (dropdowns, rango
de edad, sort, búsqueda y paginado) e imprime la página como tabla.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, err := httpclient.New(queryFlags.server, 15*time.Second)
		if err != nil {
			return err
		}
		client.Token = queryFlags.token

		var page dashboard.TablePage
		if err := client.GetJSON(cmd.Context(), "/api/table", tableParams(cmd), &page); err != nil {
			return err
		}
		return printPage(cmd.OutOrStdout(), page, splitColumns(queryFlags.columns))
	},
}

func init() {
	f := queryCmd.Flags()
	f.StringVar(&queryFlags.server, "server", "http://localhost:8080", "URL base del servidor")
	f.StringVar(&queryFlags.token, "token", "", "token de operador (opcional)")
	f.StringVar(&queryFlags.typ, "type", "", "animal_type")
	f.StringVar(&queryFlags.breed, "breed", "", "breed")
	f.StringVar(&queryFlags.gender, "gender", "", "sex_upon_outcome")
	f.IntVar(&queryFlags.ageMin, "age-min", 0, "semanas (valor inferior del slider)")
	f.IntVar(&queryFlags.ageMax, "age-max", 0, "semanas (valor superior del slider)")
	f.IntVar(&queryFlags.page, "page", 0, "página, base 0")
	f.IntVar(&queryFlags.pageSize, "page-size", dashboard.DefaultPageSize, "filas por página")
	f.StringVar(&queryFlags.sort, "sort", "", "col:asc,col2:desc")
	f.StringVar(&queryFlags.search, "q", "", "búsqueda en cualquier columna")
	f.StringVar(&queryFlags.columns, "columns", "animal_id,animal_type,breed,name,sex_upon_outcome,age_upon_outcome_in_weeks", "columnas a imprimir")
}

// tableParams solo manda el rango de edad si el flag se usó: sin él el servidor usa los límites del snapshot.
func tableParams(cmd *cobra.Command) url.Values {
	q := url.Values{}
	set := func(k, v string) {
		if strings.TrimSpace(v) != "" {
			q.Set(k, v)
		}
	}
	set("type", queryFlags.typ)
	set("breed", queryFlags.breed)
	set("gender", queryFlags.gender)
	set("sort", queryFlags.sort)
	set("q", queryFlags.search)

	if cmd.Flags().Changed("age-min") {
		q.Set("age_min", strconv.Itoa(queryFlags.ageMin))
	}
	if cmd.Flags().Changed("age-max") {
		q.Set("age_max", strconv.Itoa(queryFlags.ageMax))
	}
	q.Set("page", strconv.Itoa(queryFlags.page))
	q.Set("page_size", strconv.Itoa(queryFlags.pageSize))
	return q
}

func splitColumns(s string) []string {
	var out []string
	for _, c := range strings.Split(s, ",") {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

func printPage(w io.Writer, page dashboard.TablePage, columns []string) error {
	if len(columns) == 0 {
		columns = page.Columns
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(columns, "\t"))
	for _, r := range page.Rows {
		cells := make([]string, len(columns))
		for i, c := range columns {
			cells[i] = r.String(c)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "%s | page %d/%d | %d rows\n", page.SliderText, min(page.Page+1, page.PageCount), page.PageCount, page.Total)
	return err
}
