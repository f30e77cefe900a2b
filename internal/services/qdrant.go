package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

// GuideStore holds curated skill-guide snippets ("how to acquire or
// demonstrate skill X") used to ground feedback enrichment prompts.
type GuideStore interface {
	InitCollection(ctx context.Context) error
	UpsertGuide(ctx context.Context, guideID, skill, text string, embedding []float32) error
	SearchGuides(ctx context.Context, queryEmbedding []float32, limit int) ([]GuideSnippet, error)
}

type GuideSnippet struct {
	ID    string
	Skill string
	Text  string
	Score float32
}

type qdrantGuideStore struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
}

func NewGuideStore(urlStr, apiKey, collectionName string) (GuideStore, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// gRPC port by default.
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &qdrantGuideStore{
		client:         client,
		collectionName: collectionName,
		vectorSize:     768, // text-embedding-004 size
	}, nil
}

// InitCollection implements GuideStore.
func (q *qdrantGuideStore) InitCollection(ctx context.Context) error {
	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}
	if exists {
		return nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	return nil
}

// UpsertGuide implements GuideStore.
func (q *qdrantGuideStore) UpsertGuide(ctx context.Context, guideID, skill, text string, embedding []float32) error {
	pointID := uuid.New()

	point := &qdrant.PointStruct{
		Id:      qdrant.NewIDNum(uint64(pointID.ID())),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(map[string]interface{}{
			"guide_id": guideID,
			"skill":    skill,
			"text":     text,
		}),
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert point: %w", err)
	}

	return nil
}

// SearchGuides implements GuideStore.
func (q *qdrantGuideStore) SearchGuides(ctx context.Context, queryEmbedding []float32, limit int) ([]GuideSnippet, error) {
	searchResult, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(queryEmbedding...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	var results []GuideSnippet
	for _, point := range searchResult {
		payload := point.Payload

		snippet := GuideSnippet{Score: point.Score}

		if id, ok := payload["guide_id"]; ok {
			if val, ok := id.GetKind().(*qdrant.Value_StringValue); ok {
				snippet.ID = val.StringValue
			}
		}
		if skill, ok := payload["skill"]; ok {
			if val, ok := skill.GetKind().(*qdrant.Value_StringValue); ok {
				snippet.Skill = val.StringValue
			}
		}
		if text, ok := payload["text"]; ok {
			if val, ok := text.GetKind().(*qdrant.Value_StringValue); ok {
				snippet.Text = val.StringValue
			}
		}

		results = append(results, snippet)
	}

	return results, nil
}
