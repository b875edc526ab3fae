package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
)

// IndexMedicine upserts a medicine document. A nil client is a no-op so the
// catalog keeps working when Elasticsearch is not configured.
func (es *ElasticClient) IndexMedicine(medicine map[string]interface{}) error {
	if es == nil {
		return nil
	}

	idValue, ok := medicine["id"]
	if !ok {
		return fmt.Errorf("missing id field in medicine")
	}
	id := fmt.Sprintf("%v", idValue)

	doc, _ := json.Marshal(medicine)
	req, err := http.NewRequestWithContext(
		context.Background(),
		"PUT",
		fmt.Sprintf("%s/medicines/_doc/%s", es.BaseURL, id),
		bytes.NewBuffer(doc),
	)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := es.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("failed to index medicine: %s", resp.Status)
	}

	log.Printf("Indexed medicine %s", id)
	return nil
}

func (es *ElasticClient) DeleteMedicine(id string) error {
	if es == nil {
		return nil
	}

	reqURL := fmt.Sprintf("%s/medicines/_doc/%s", es.BaseURL, id)
	req, _ := http.NewRequest("DELETE", reqURL, nil)

	resp, err := es.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("failed to delete medicine: %s", resp.Status)
	}

	log.Printf("Deleted medicine %s from index", id)
	return nil
}

// SearchMedicines runs a multi_match query over name and desc with optional
// price range filters.
func (es *ElasticClient) SearchMedicines(query, minPrice, maxPrice string) ([]map[string]interface{}, error) {
	if es == nil {
		return nil, fmt.Errorf("search not configured")
	}

	boolQuery := map[string]interface{}{
		"must": []interface{}{
			map[string]interface{}{
				"multi_match": map[string]interface{}{
					"query":  query,
					"fields": []string{"name", "desc"},
				},
			},
		},
		"filter": []interface{}{},
	}

	priceRange := map[string]interface{}{}
	if minPrice != "" {
		priceRange["gte"] = minPrice
	}
	if maxPrice != "" {
		priceRange["lte"] = maxPrice
	}
	if len(priceRange) > 0 {
		boolQuery["filter"] = append(
			boolQuery["filter"].([]interface{}),
			map[string]interface{}{
				"range": map[string]interface{}{"price": priceRange},
			},
		)
	}

	body, _ := json.Marshal(map[string]interface{}{
		"query": map[string]interface{}{"bool": boolQuery},
	})

	reqURL := fmt.Sprintf("%s/medicines/_search", es.BaseURL)
	req, err := http.NewRequest("POST", reqURL, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := es.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("search failed: %s", resp.Status)
	}

	var result struct {
		Hits struct {
			Hits []struct {
				Source map[string]interface{} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	medicines := make([]map[string]interface{}, 0, len(result.Hits.Hits))
	for _, hit := range result.Hits.Hits {
		medicines = append(medicines, hit.Source)
	}
	return medicines, nil
}
