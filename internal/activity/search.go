// internal/activity/search.go
package activity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/gandikediye-afk/gandi-command-center/internal/common/database"
	"github.com/gandikediye-afk/gandi-command-center/internal/common/errors"
	"github.com/gandikediye-afk/gandi-command-center/internal/common/logger"
	"github.com/gandikediye-afk/gandi-command-center/internal/models"
)

const defaultPageSize = 20

// Indexer writes activity events into the activity index and searches them.
type Indexer struct {
	es    *database.ElasticsearchClient
	log   logger.Logger
	index string
}

func NewIndexer(es *database.ElasticsearchClient, index string, log logger.Logger) *Indexer {
	return &Indexer{es: es, log: log, index: index}
}

// Index writes one activity event.
func (i *Indexer) Index(ctx context.Context, event models.ActivityEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return errors.NewActivityIndexFailedError(err)
	}

	req := esapi.IndexRequest{
		Index: i.index,
		Body:  bytes.NewReader(body),
	}

	res, err := req.Do(ctx, i.es.Client)
	if err != nil {
		return errors.NewActivityIndexFailedError(err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return errors.NewActivityIndexFailedError(fmt.Errorf("index response: %s", res.Status()))
	}

	i.log.Debug("activity event indexed", map[string]interface{}{
		"entity": event.EntityCode,
		"index":  i.index,
	})
	return nil
}

// Query narrows an activity search. Empty fields are ignored.
type Query struct {
	Text       string
	EntityCode string
	Size       int
}

// Result is one page of activity hits, newest first.
type Result struct {
	Events    []models.ActivityEvent `json:"events"`
	TotalHits int64                  `json:"totalHits"`
}

// Search runs a match query over activity messages, optionally filtered to
// one entity, sorted newest first.
func (i *Indexer) Search(ctx context.Context, q Query) (*Result, error) {
	size := q.Size
	if size < 1 || size > 100 {
		size = defaultPageSize
	}

	body, err := json.Marshal(buildSearchBody(q))
	if err != nil {
		return nil, errors.NewActivitySearchFailedError(err)
	}

	from := 0
	req := esapi.SearchRequest{
		Index: []string{i.index},
		Body:  bytes.NewReader(body),
		From:  &from,
		Size:  &size,
	}

	res, err := req.Do(ctx, i.es.Client)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, errors.NewSearchTimeoutError()
		}
		return nil, errors.NewActivitySearchFailedError(err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, errors.NewActivitySearchFailedError(fmt.Errorf("search response: %s", res.Status()))
	}

	var r map[string]interface{}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, errors.NewActivitySearchFailedError(err)
	}

	return parseHits(r)
}

func buildSearchBody(q Query) map[string]interface{} {
	mustClauses := []interface{}{}
	filterClauses := []interface{}{}

	if q.Text != "" {
		mustClauses = append(mustClauses, map[string]interface{}{
			"match": map[string]interface{}{
				"message": q.Text,
			},
		})
	} else {
		mustClauses = append(mustClauses, map[string]interface{}{
			"match_all": map[string]interface{}{},
		})
	}

	if q.EntityCode != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"entityCode": q.EntityCode},
		})
	}

	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must":   mustClauses,
				"filter": filterClauses,
			},
		},
		"sort": []interface{}{
			map[string]interface{}{
				"observedAt": map[string]interface{}{"order": "desc"},
			},
		},
	}
}

func parseHits(r map[string]interface{}) (*Result, error) {
	hits, ok := r["hits"].(map[string]interface{})
	if !ok {
		return nil, errors.NewActivitySearchFailedError(fmt.Errorf("malformed search response"))
	}

	result := &Result{}
	if total, ok := hits["total"].(map[string]interface{}); ok {
		if value, ok := total["value"].(float64); ok {
			result.TotalHits = int64(value)
		}
	}

	hitList, ok := hits["hits"].([]interface{})
	if !ok {
		return result, nil
	}

	for _, hit := range hitList {
		source, ok := hit.(map[string]interface{})["_source"]
		if !ok {
			continue
		}
		raw, err := json.Marshal(source)
		if err != nil {
			continue
		}
		var event models.ActivityEvent
		if err := json.Unmarshal(raw, &event); err != nil {
			continue
		}
		result.Events = append(result.Events, event)
	}
	return result, nil
}
