package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"animal-shelter/internal/domain/animals"

	"github.com/spf13/cobra"
)

var importFile string

var importCmd = &cobra.Command{
	Use:   "import --file aac_shelter_outcomes.csv",
	Short: "Carga un CSV del dataset AAC en el store configurado",
	RunE: func(cmd *cobra.Command, _ []string) error {
		f, err := os.Open(importFile)
		if err != nil {
			return err
		}
		defer f.Close()

		repo, err := openRepo(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer repo.Close(context.Background())

		res, err := importCSV(cmd.Context(), animals.NewService(repo, log), f)
		if err != nil {
			return err
		}
		log.Info("import finished", map[string]any{
			"file":     importFile,
			"inserted": res.Inserted,
			"rejected": res.Rejected,
		})
		fmt.Fprintf(cmd.OutOrStdout(), "inserted=%d rejected=%d\n", res.Inserted, res.Rejected)
		return nil
	},
}

func init() {
	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "CSV con encabezado (columnas del dataset AAC)")
	_ = importCmd.MarkFlagRequired("file")
}

// Columnas numéricas del dataset; el resto queda como texto.
var numericFields = map[string]bool{
	animals.FieldRecNum:    true,
	animals.FieldAgeWeeks:  true,
	animals.FieldLatitude:  true,
	animals.FieldLongitude: true,
}

type importResult struct {
	Inserted int
	Rejected int
}

type creator interface {
	Create(ctx context.Context, rec animals.Record) (bool, error)
}

func importCSV(ctx context.Context, dao creator, r io.Reader) (importResult, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return importResult{}, fmt.Errorf("read header: %w", err)
	}
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		// El índice exportado por pandas llega sin nombre o como "1".
		if h == "" || (i == 0 && h == "1") {
			h = animals.FieldRecNum
		}
		header[i] = h
	}

	var res importResult
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return res, nil
		}
		if err != nil {
			return res, fmt.Errorf("line %d: %w", line, err)
		}

		rec := recordFromRow(header, row)
		if len(rec) == 0 {
			continue
		}

		ok, err := dao.Create(ctx, rec)
		if err != nil {
			return res, fmt.Errorf("line %d: %w", line, err)
		}
		if ok {
			res.Inserted++
		} else {
			res.Rejected++
		}
	}
}

func recordFromRow(header, row []string) animals.Record {
	rec := animals.Record{}
	for i, v := range row {
		if i >= len(header) {
			break
		}
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		field := header[i]
		if numericFields[field] {
			if n, err := strconv.ParseInt(v, 10, 64); err == nil {
				rec[field] = n
				continue
			}
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				rec[field] = f
				continue
			}
		}
		rec[field] = v
	}
	return rec
}
