package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcalzada-xor/scaudit/internal/core/domain"
)

type memWhitelist struct {
	contacts []domain.WhitelistContact
}

func (m *memWhitelist) SaveContact(_ context.Context, c *domain.WhitelistContact) error {
	for _, existing := range m.contacts {
		if existing.Email == c.Email {
			return domain.ErrDuplicateEmail
		}
	}
	c.ID = int64(len(m.contacts) + 1)
	m.contacts = append(m.contacts, *c)
	return nil
}

func (m *memWhitelist) ListContacts(_ context.Context) ([]domain.WhitelistContact, error) {
	return m.contacts, nil
}

func TestHandleSignup(t *testing.T) {
	h := NewWhitelistHandler(&memWhitelist{})

	rec := doRequest(h.HandleSignup, http.MethodPost, "/api/whitelist/signup", map[string]string{
		"email":        "auditor@example.com",
		"name":         "Ada",
		"organization": "Example Labs",
	}, nil)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestHandleSignupInvalidEmail(t *testing.T) {
	h := NewWhitelistHandler(&memWhitelist{})

	rec := doRequest(h.HandleSignup, http.MethodPost, "/api/whitelist/signup", map[string]string{
		"email": "not-an-email",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleSignupDuplicate(t *testing.T) {
	h := NewWhitelistHandler(&memWhitelist{})

	body := map[string]string{"email": "auditor@example.com"}
	rec := doRequest(h.HandleSignup, http.MethodPost, "/api/whitelist/signup", body, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(h.HandleSignup, http.MethodPost, "/api/whitelist/signup", body, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandleListContacts(t *testing.T) {
	store := &memWhitelist{}
	h := NewWhitelistHandler(store)

	c, err := domain.NewWhitelistContact("auditor@example.com", "Ada", "")
	require.NoError(t, err)
	require.NoError(t, store.SaveContact(context.Background(), c))

	rec := doRequest(h.HandleListContacts, http.MethodGet, "/api/whitelist", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Contacts []domain.WhitelistContact `json:"contacts"`
		Count    int                       `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, "auditor@example.com", resp.Contacts[0].Email)
}
