// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package batch

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"

	dataframe "github.com/rocketlaunchr/dataframe-go"
	"github.com/rocketlaunchr/dataframe-go/imports"
	"github.com/xitongsys/parquet-go-source/local"
)

// Load reads an input table, choosing the format by file extension.
func Load(path string) (df *dataframe.DataFrame, err error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		df, err = LoadCSV(path)
	case ".json":
		df, err = LoadJSON(path)
	case ".parquet":
		df, err = LoadParquet(path)
	default:
		err = ErrFormat(ext)
	}

	return
}

// LoadCSV reads a CSV file with a header row. Empty cells are unset.
func LoadCSV(path string) (df *dataframe.DataFrame, err error) {
	file, err := os.Open(path)
	if err != nil {
		return
	}
	defer file.Close()

	df, err = imports.LoadFromCSV(context.Background(), file, imports.CSVLoadOptions{
		InferDataTypes: true,
	})
	if err != nil {
		df = nil
		return
	}

	return checked(df)
}

// LoadJSON reads a JSON array of objects, one per row.
func LoadJSON(path string) (df *dataframe.DataFrame, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}

	if len(bytes.TrimSpace(data)) == 0 {
		err = ErrEmpty
		return
	}

	df, err = imports.LoadFromJSON(context.Background(), bytes.NewReader(data))
	if err != nil {
		df = nil
		return
	}

	return checked(df)
}

// LoadParquet reads a Parquet file.
func LoadParquet(path string) (df *dataframe.DataFrame, err error) {
	fr, err := local.NewLocalFileReader(path)
	if err != nil {
		return
	}
	defer fr.Close()

	df, err = imports.LoadFromParquet(context.Background(), fr)
	if err != nil {
		df = nil
		return
	}

	return checked(df)
}

func checked(in *dataframe.DataFrame) (df *dataframe.DataFrame, err error) {
	if in == nil || len(in.Series) == 0 {
		err = ErrEmpty
		return
	}

	df = in
	return
}
