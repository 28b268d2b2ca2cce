// Package notion persists client brand profiles in a Notion database.
package notion

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jomei/notionapi"
	"github.com/rs/zerolog/log"
	"github.com/sethvargo/go-retry"
)

// Client is one row of the client database.
type Client struct {
	Name   string
	PageID string
}

// Store wraps the Notion API for the client database.
type Store struct {
	client   *notionapi.Client
	clientDB notionapi.DatabaseID
}

func NewStore(apiKey, clientDatabaseID string) *Store {
	return &Store{
		client:   notionapi.NewClient(notionapi.Token(apiKey)),
		clientDB: notionapi.DatabaseID(clientDatabaseID),
	}
}

// ListClients returns all clients sorted ascending by name.
func (s *Store) ListClients(ctx context.Context) ([]Client, error) {
	var clients []Client
	req := &notionapi.DatabaseQueryRequest{
		Sorts: []notionapi.SortObject{{Property: "Name", Direction: "ascending"}},
	}
	for {
		resp, err := s.client.Database.Query(ctx, s.clientDB, req)
		if err != nil {
			return nil, fmt.Errorf("notion: query clients: %w", err)
		}
		for i := range resp.Results {
			page := &resp.Results[i]
			title, ok := page.Properties["Name"].(*notionapi.TitleProperty)
			if !ok || len(title.Title) == 0 {
				continue
			}
			clients = append(clients, Client{
				Name:   richTextContent(title.Title[0]),
				PageID: string(page.ID),
			})
		}
		if !resp.HasMore {
			break
		}
		req.StartCursor = notionapi.Cursor(resp.NextCursor)
	}
	sort.Slice(clients, func(i, j int) bool { return clients[i].Name < clients[j].Name })
	return clients, nil
}

// FindClient returns the page id of the named client, or empty when absent.
func (s *Store) FindClient(ctx context.Context, name string) (string, error) {
	clients, err := s.ListClients(ctx)
	if err != nil {
		return "", err
	}
	for _, c := range clients {
		if c.Name == name {
			return c.PageID, nil
		}
	}
	return "", nil
}

// CreateClient adds a new client row with research status "In Progress" and
// returns its page id.
func (s *Store) CreateClient(ctx context.Context, name, industry string) (string, error) {
	props := notionapi.Properties{
		"Name": &notionapi.TitleProperty{
			Title: []notionapi.RichText{{Text: &notionapi.Text{Content: name}}},
		},
		"Research_Status": &notionapi.SelectProperty{
			Select: notionapi.Option{Name: "In Progress"},
		},
		"Last_Updated": lastUpdated(),
	}
	if industry != "" {
		props["Industry"] = &notionapi.SelectProperty{Select: notionapi.Option{Name: industry}}
	}

	page, err := s.client.Page.Create(ctx, &notionapi.PageCreateRequest{
		Parent:     notionapi.Parent{DatabaseID: s.clientDB},
		Properties: props,
	})
	if err != nil {
		return "", fmt.Errorf("notion: create client %q: %w", name, err)
	}
	log.Info().Str("client", name).Str("page_id", string(page.ID)).Msg("created client")
	return string(page.ID), nil
}

// GetProfile retrieves a client page as a context-keyed profile map.
func (s *Store) GetProfile(ctx context.Context, pageID string) (map[string]any, error) {
	page, err := s.client.Page.Get(ctx, notionapi.PageID(pageID))
	if err != nil {
		return nil, fmt.Errorf("notion: get profile %s: %w", pageID, err)
	}
	return ProfileFromPage(page), nil
}

// UpdateProfile writes workflow context data onto the client page. Notion
// update calls flake under load, so the write retries up to three times.
func (s *Store) UpdateProfile(ctx context.Context, pageID string, data map[string]any) error {
	props := PropertiesFromContext(data)
	if len(props) == 0 {
		return nil
	}
	props["Research_Status"] = &notionapi.SelectProperty{Select: notionapi.Option{Name: "In Progress"}}
	props["Last_Updated"] = lastUpdated()

	return s.updateWithRetry(ctx, pageID, props, "profile update")
}

// ToolStatus reads the completion checkbox of every known tool.
func (s *Store) ToolStatus(ctx context.Context, pageID string) (map[string]bool, error) {
	status := make(map[string]bool, len(toolProperties))
	for tool := range toolProperties {
		status[tool] = false
	}

	page, err := s.client.Page.Get(ctx, notionapi.PageID(pageID))
	if err != nil {
		return nil, fmt.Errorf("notion: get tool status %s: %w", pageID, err)
	}
	for tool, property := range toolProperties {
		if cb, ok := page.Properties[property].(*notionapi.CheckboxProperty); ok {
			status[tool] = cb.Checkbox
		}
	}
	return status, nil
}

// MarkToolComplete checks the tool's completion box and records it as the
// last finished tool.
func (s *Store) MarkToolComplete(ctx context.Context, pageID, tool string) error {
	property, ok := toolProperties[tool]
	if !ok {
		return fmt.Errorf("notion: unknown tool %q", tool)
	}
	props := notionapi.Properties{
		property:              &notionapi.CheckboxProperty{Checkbox: true},
		"Last_Tool_Completed": richText(tool),
		"Last_Updated":        lastUpdated(),
	}
	return s.updateWithRetry(ctx, pageID, props, "mark tool complete")
}

func (s *Store) updateWithRetry(ctx context.Context, pageID string, props notionapi.Properties, what string) error {
	backoff := retry.WithMaxRetries(2, retry.NewConstant(time.Second))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		_, err := s.client.Page.Update(ctx, notionapi.PageID(pageID), &notionapi.PageUpdateRequest{
			Properties: props,
		})
		if err != nil {
			log.Warn().Err(err).Str("page_id", pageID).Msgf("%s failed, retrying", what)
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("notion: %s %s: %w", what, pageID, err)
	}
	return nil
}

func lastUpdated() *notionapi.DateProperty {
	now := notionapi.Date(time.Now())
	return &notionapi.DateProperty{Date: &notionapi.DateObject{Start: &now}}
}
