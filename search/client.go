package search

import (
	"net/http"
	"time"
)

type ElasticClient struct {
	BaseURL string
	client  *http.Client
}

func NewElasticClient(baseURL string) *ElasticClient {
	return &ElasticClient{
		BaseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}
