package database

import (
	"gorm.io/gorm"
)

// geoNodeChunkSize limits how many stop IDs go into a single IN (...) clause.
const geoNodeChunkSize = 50

// GeoNode is a stop as TransitMaster knows it.
type GeoNode struct {
	StopID    string
	Name      string
	Latitude  *float64
	Longitude *float64
}

// GeoNodes looks up the given stop IDs in the GEO_NODE table and returns the
// matching rows. IDs with no match are simply absent from the result.
func GeoNodes(db *gorm.DB, stopIDs []string) ([]GeoNode, error) {
	var nodes []GeoNode
	for _, chunk := range Chunk(stopIDs, geoNodeChunkSize) {
		rows, err := db.Raw(
			`SELECT GEO_NODE_ABBR, GEO_NODE_NAME, `+
				`MDT_LATITUDE/10000000, MDT_LONGITUDE/10000000 `+
				`FROM GEO_NODE WHERE GEO_NODE_ABBR IN ?`,
			chunk,
		).Rows()
		if err != nil {
			return nil, err
		}
		for rows.Next() {
			var node GeoNode
			if err := rows.Scan(&node.StopID, &node.Name, &node.Latitude, &node.Longitude); err != nil {
				rows.Close()
				return nil, err
			}
			nodes = append(nodes, node)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, err
		}
		rows.Close()
	}
	return nodes, nil
}

// Chunk groups a slice into sub-slices of at most size elements.
func Chunk[T any](items []T, size int) [][]T {
	if size <= 0 || len(items) == 0 {
		return nil
	}
	var chunks [][]T
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, items[start:end])
	}
	return chunks
}
