package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"animal-shelter/internal/domain/animals"
	"animal-shelter/internal/platform/httpclient"

	"github.com/spf13/cobra"
)

var createFlags struct {
	server   string
	token    string
	operator string
	data     string
	file     string
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Inserta un registro de animal en un servidor en marcha",
	Long: `create manda POST /animals con el documento de --data (JSON) o de --file
("-" lee stdin). El servidor exige operador: --token si corre con verifier,
--operator si corre en modo dev.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		src, err := createSource(cmd.InOrStdin())
		if err != nil {
			return err
		}
		if c, ok := src.(io.Closer); ok {
			defer c.Close()
		}

		rec, err := decodeRecord(src)
		if err != nil {
			return err
		}

		client, err := httpclient.New(createFlags.server, 15*time.Second)
		if err != nil {
			return err
		}
		client.Token = createFlags.token
		client.Operator = createFlags.operator

		ok, err := postRecord(cmd.Context(), client, rec)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "ok=false (el store rechazó la inserción)")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), "ok=true")
		return nil
	},
}

func init() {
	f := createCmd.Flags()
	f.StringVar(&createFlags.server, "server", "http://localhost:8080", "URL base del servidor")
	f.StringVar(&createFlags.token, "token", "", "token de operador (Bearer)")
	f.StringVar(&createFlags.operator, "operator", "", "ID de operador en modo dev (X-Debug-User-ID)")
	f.StringVar(&createFlags.data, "data", "", "documento JSON")
	f.StringVar(&createFlags.file, "file", "", `archivo con el documento JSON ("-" = stdin)`)
	createCmd.MarkFlagsMutuallyExclusive("data", "file")
	createCmd.MarkFlagsOneRequired("data", "file")
}

func createSource(stdin io.Reader) (io.Reader, error) {
	switch {
	case createFlags.data != "":
		return strings.NewReader(createFlags.data), nil
	case createFlags.file == "-":
		return stdin, nil
	default:
		return os.Open(createFlags.file)
	}
}

// decodeRecord conserva los números como json.Number para no perder enteros en el viaje.
func decodeRecord(r io.Reader) (animals.Record, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var rec animals.Record
	if err := dec.Decode(&rec); err != nil {
		return nil, fmt.Errorf("record: invalid json: %w", err)
	}
	if len(rec) == 0 {
		return nil, errors.New("record: document must be a non-empty JSON object")
	}
	return rec, nil
}

type createResponse struct {
	OK bool `json:"ok"`
}

func postRecord(ctx context.Context, client *httpclient.Client, rec animals.Record) (bool, error) {
	var resp createResponse
	if err := client.SendJSON(ctx, http.MethodPost, "/animals", rec, &resp); err != nil {
		return false, err
	}
	return resp.OK, nil
}
