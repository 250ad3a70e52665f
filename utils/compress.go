package utils

import (
	"encoding/json"

	"github.com/golang/snappy"
)

// PackRawRecord сериализует исходную запись в JSON и сжимает её snappy
// для хранения в BLOB-колонке карантинной таблицы
func PackRawRecord(fields map[string]string) ([]byte, error) {
	data, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	return snappy.Encode(nil, data), nil
}

// UnpackRawRecord распаковывает и десериализует исходную запись из карантина
func UnpackRawRecord(blob []byte) (map[string]string, error) {
	decompressed, err := snappy.Decode(nil, blob)
	if err != nil {
		return nil, err
	}

	var fields map[string]string
	if err := json.Unmarshal(decompressed, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}
