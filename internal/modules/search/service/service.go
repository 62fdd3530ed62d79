package service

import (
	"encoding/json"
	"fmt"
	"log"

	"anoa.com/fittrack/internal/entity"
	"github.com/meilisearch/meilisearch-go"
)

const userIndex = "users"

type UserDocument struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// UserSearchService keeps the Meilisearch user index in sync and serves the
// user discovery search. Only public identity fields are indexed; privacy,
// follow state and resources never reach the index.
type UserSearchService interface {
	IndexUser(user *entity.User) error
	RemoveUser(id string) error
	Search(query string, limit int64) ([]UserDocument, error)
}

type userSearchService struct {
	client meilisearch.ServiceManager
}

func NewUserSearchService(client meilisearch.ServiceManager) UserSearchService {
	s := &userSearchService{client: client}
	s.initIndex()
	return s
}

func (s *userSearchService) initIndex() {
	sortable := []string{"username"}
	if _, err := s.client.Index(userIndex).UpdateSortableAttributes(&sortable); err != nil {
		log.Printf("Failed to update users sortable attributes: %v", err)
	}

	searchable := []string{"username", "name"}
	if _, err := s.client.Index(userIndex).UpdateSearchableAttributes(&searchable); err != nil {
		log.Printf("Failed to update users searchable attributes: %v", err)
	}
}

func (s *userSearchService) IndexUser(user *entity.User) error {
	doc := UserDocument{
		ID:       user.ID.String(),
		Username: user.Username,
		Name:     user.Name,
	}

	task, err := s.client.Index(userIndex).AddDocuments([]UserDocument{doc}, strPtr("id"))
	if err != nil {
		return fmt.Errorf("failed to index user: %w", err)
	}
	log.Printf("Indexed user %s, task id: %d", doc.Username, task.TaskUID)

	return nil
}

func (s *userSearchService) RemoveUser(id string) error {
	_, err := s.client.Index(userIndex).DeleteDocument(id)
	return err
}

func (s *userSearchService) Search(query string, limit int64) ([]UserDocument, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}

	resp, err := s.client.Index(userIndex).Search(query, &meilisearch.SearchRequest{
		Limit: limit,
	})
	if err != nil {
		return nil, fmt.Errorf("user search failed: %w", err)
	}

	raw, err := json.Marshal(resp.Hits)
	if err != nil {
		return nil, err
	}

	var docs []UserDocument
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, err
	}

	return docs, nil
}

func strPtr(s string) *string {
	return &s
}
