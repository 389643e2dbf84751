package search

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/ecstasyholdings/meeting-brain/pkg/config"
)

const keyPrefix = "meeting:"

// MeetingDocument is the searchable projection of an enriched meeting
type MeetingDocument struct {
	MeetingID    string
	MeetingDate  string
	Transcript   string
	Subsidiary   string
	Department   string
	Participants []string
	Tags         []string
	Vector       []float32
}

// SearchHit is a single semantic search result
type SearchHit struct {
	MeetingID   string  `json:"meeting_id"`
	MeetingDate string  `json:"meeting_date"`
	Subsidiary  string  `json:"subsidiary"`
	Department  string  `json:"department"`
	Tags        string  `json:"tags"`
	Score       float64 `json:"score"`
}

// Index provides vector search over enriched meetings backed by Redis
type Index struct {
	rdb       *redis.Client
	indexName string
	dimension int
}

// NewIndex connects to Redis and ensures the search index exists
func NewIndex(ctx context.Context, cfg *config.Config) (*Index, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	idx := &Index{
		rdb:       rdb,
		indexName: cfg.Enrichment.SearchIndexName,
		dimension: cfg.Enrichment.EmbeddingDimension,
	}
	if err := idx.ensureIndex(ctx); err != nil {
		return nil, err
	}
	return idx, nil
}

// ensureIndex creates the vector index unless it already exists
func (i *Index) ensureIndex(ctx context.Context) error {
	if err := i.rdb.FTInfo(ctx, i.indexName).Err(); err == nil {
		return nil
	}

	err := i.rdb.FTCreate(ctx, i.indexName,
		&redis.FTCreateOptions{
			OnHash: true,
			Prefix: []interface{}{keyPrefix},
		},
		&redis.FieldSchema{FieldName: "meeting_id", FieldType: redis.SearchFieldTypeTag},
		&redis.FieldSchema{FieldName: "meeting_date", FieldType: redis.SearchFieldTypeText},
		&redis.FieldSchema{FieldName: "transcript_content", FieldType: redis.SearchFieldTypeText},
		&redis.FieldSchema{FieldName: "subsidiary", FieldType: redis.SearchFieldTypeTag},
		&redis.FieldSchema{FieldName: "department", FieldType: redis.SearchFieldTypeTag},
		&redis.FieldSchema{FieldName: "participants", FieldType: redis.SearchFieldTypeText},
		&redis.FieldSchema{FieldName: "tags", FieldType: redis.SearchFieldTypeText},
		&redis.FieldSchema{
			FieldName: "content_vector",
			FieldType: redis.SearchFieldTypeVector,
			VectorArgs: &redis.FTVectorArgs{
				HNSWOptions: &redis.FTHNSWOptions{
					Type:           "FLOAT32",
					Dim:            i.dimension,
					DistanceMetric: "COSINE",
				},
			},
		},
	).Err()
	if err != nil && !strings.Contains(err.Error(), "Index already exists") {
		return fmt.Errorf("failed to create search index: %w", err)
	}
	return nil
}

// Upsert writes or replaces the document for a meeting. Re-running
// enrichment for the same meeting overwrites the previous entry.
func (i *Index) Upsert(ctx context.Context, doc *MeetingDocument) error {
	if doc == nil || doc.MeetingID == "" {
		return fmt.Errorf("document requires a meeting id")
	}
	if len(doc.Vector) != i.dimension {
		return fmt.Errorf("vector dimension mismatch: got %d, want %d", len(doc.Vector), i.dimension)
	}

	key := keyPrefix + doc.MeetingID
	fields := map[string]interface{}{
		"meeting_id":         doc.MeetingID,
		"meeting_date":       doc.MeetingDate,
		"transcript_content": doc.Transcript,
		"subsidiary":         doc.Subsidiary,
		"department":         doc.Department,
		"participants":       strings.Join(doc.Participants, ", "),
		"tags":               strings.Join(doc.Tags, ", "),
		"content_vector":     encodeVector(doc.Vector),
	}
	if err := i.rdb.HSet(ctx, key, fields).Err(); err != nil {
		return fmt.Errorf("failed to upsert meeting document: %w", err)
	}
	return nil
}

// Search runs a KNN query against the index with a query embedding
func (i *Index) Search(ctx context.Context, vector []float32, k int) ([]SearchHit, error) {
	if len(vector) != i.dimension {
		return nil, fmt.Errorf("vector dimension mismatch: got %d, want %d", len(vector), i.dimension)
	}
	if k <= 0 {
		k = 5
	}

	query := fmt.Sprintf("*=>[KNN %d @content_vector $vec AS vector_score]", k)
	res, err := i.rdb.FTSearchWithArgs(ctx, i.indexName, query, &redis.FTSearchOptions{
		Return: []redis.FTSearchReturn{
			{FieldName: "meeting_id"},
			{FieldName: "meeting_date"},
			{FieldName: "subsidiary"},
			{FieldName: "department"},
			{FieldName: "tags"},
			{FieldName: "vector_score"},
		},
		SortBy:         []redis.FTSearchSortBy{{FieldName: "vector_score", Asc: true}},
		DialectVersion: 2,
		Params:         map[string]interface{}{"vec": encodeVector(vector)},
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to search index: %w", err)
	}

	hits := make([]SearchHit, 0, len(res.Docs))
	for _, doc := range res.Docs {
		hit := SearchHit{
			MeetingID:   doc.Fields["meeting_id"],
			MeetingDate: doc.Fields["meeting_date"],
			Subsidiary:  doc.Fields["subsidiary"],
			Department:  doc.Fields["department"],
			Tags:        doc.Fields["tags"],
		}
		fmt.Sscanf(doc.Fields["vector_score"], "%f", &hit.Score)
		hits = append(hits, hit)
	}
	return hits, nil
}

// Close releases the Redis connection
func (i *Index) Close() error {
	return i.rdb.Close()
}

// encodeVector packs float32 components as little-endian bytes, the layout
// Redis vector fields expect
func encodeVector(vec []float32) string {
	buf := make([]byte, 4*len(vec))
	for n, v := range vec {
		binary.LittleEndian.PutUint32(buf[n*4:], math.Float32bits(v))
	}
	return string(buf)
}
