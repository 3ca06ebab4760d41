package pathfinder

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/UnknownOlympus/meridian/internal/geometrics"
	"github.com/UnknownOlympus/meridian/internal/models"
)

// PathPoint is a path vertex, encoded either as {"lat":..,"lng":..} or [lat, lng].
type PathPoint models.Coordinate

// UnmarshalJSON accepts both point encodings and requires both components.
func (p *PathPoint) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var pair []float64
		if err := json.Unmarshal(data, &pair); err != nil {
			return err
		}
		if len(pair) != 2 {
			return fmt.Errorf("path point must have 2 components, got %d", len(pair))
		}
		p.Lat, p.Lng = pair[0], pair[1]
		return nil
	}

	var obj struct {
		Lat *float64 `json:"lat"`
		Lng *float64 `json:"lng"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	if obj.Lat == nil || obj.Lng == nil {
		return errors.New("path point requires lat and lng")
	}
	p.Lat, p.Lng = *obj.Lat, *obj.Lng
	return nil
}

// pathResponse mirrors the backend body; pointers tell absent fields from zero values.
type pathResponse struct {
	Path          *[]PathPoint `json:"path"`
	Distance      *float64     `json:"distance"`
	Duration      *float64     `json:"duration"`
	NodesVisited  *int         `json:"nodes_visited"`
	ExecutionTime *float64     `json:"execution_time"`
}

// decodePathResult parses and validates a path response body.
func decodePathResult(body []byte) (*models.PathResult, error) {
	var resp pathResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &DecodeError{Err: err}
	}

	switch {
	case resp.Path == nil:
		return nil, &SchemaError{Field: "path", Reason: "is required"}
	case resp.Distance == nil:
		return nil, &SchemaError{Field: "distance", Reason: "is required"}
	case resp.NodesVisited == nil:
		return nil, &SchemaError{Field: "nodes_visited", Reason: "is required"}
	case resp.ExecutionTime == nil:
		return nil, &SchemaError{Field: "execution_time", Reason: "is required"}
	}

	if err := nonNegative("distance", *resp.Distance); err != nil {
		return nil, err
	}
	if err := nonNegative("execution_time", *resp.ExecutionTime); err != nil {
		return nil, err
	}
	if resp.Duration != nil {
		if err := nonNegative("duration", *resp.Duration); err != nil {
			return nil, err
		}
	}
	if *resp.NodesVisited < 0 {
		return nil, &SchemaError{Field: "nodes_visited", Reason: "must not be negative"}
	}

	path := make([]models.Coordinate, 0, len(*resp.Path))
	for idx, point := range *resp.Path {
		coord := models.Coordinate(point)
		if err := geometrics.Validate(coord); err != nil {
			return nil, &SchemaError{Field: fmt.Sprintf("path[%d]", idx), Reason: err.Error()}
		}
		path = append(path, coord)
	}

	return &models.PathResult{
		Path:          path,
		Distance:      *resp.Distance,
		Duration:      resp.Duration,
		NodesVisited:  *resp.NodesVisited,
		ExecutionTime: *resp.ExecutionTime,
	}, nil
}

func nonNegative(field string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return &SchemaError{Field: field, Reason: "must be a non-negative number"}
	}
	return nil
}
