// Package sheets mirrors two Google Sheets forms (certificados y diplomados)
// behind a time-bounded cache so listing pages do not hammer the API.
package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// ValuesAPI is the slice of the Sheets API the cache needs: read the whole
// grid and overwrite one row. Tests supply a fake.
type ValuesAPI interface {
	GetValues(spreadsheetID, readRange string) ([][]interface{}, error)
	UpdateValues(spreadsheetID, writeRange string, values [][]interface{}) error
}

type googleValues struct {
	svc *sheets.Service
}

// NewService authenticates against the Sheets API with a service-account
// credentials file.
func NewService(ctx context.Context, credentialsFile string) (ValuesAPI, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("cliente de Google Sheets: %w", err)
	}
	return &googleValues{svc: svc}, nil
}

func (g *googleValues) GetValues(spreadsheetID, readRange string) ([][]interface{}, error) {
	resp, err := g.svc.Spreadsheets.Values.Get(spreadsheetID, readRange).Do()
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}

func (g *googleValues) UpdateValues(spreadsheetID, writeRange string, values [][]interface{}) error {
	body := &sheets.ValueRange{Values: values}
	_, err := g.svc.Spreadsheets.Values.Update(spreadsheetID, writeRange, body).
		ValueInputOption("USER_ENTERED").
		Do()
	return err
}
