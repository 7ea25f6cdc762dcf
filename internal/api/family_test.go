package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFamily(t *testing.T) {
	env := setupTestEnv(t)
	token := env.registerUser(t, "Maria", "maria@example.com")

	w := env.request(t, http.MethodPost, "/api/v1/families", token, CreateFamilyRequest{Name: "Rossi"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Name string `json:"name"`
	}
	decodeJSON(t, w, &resp)
	assert.Equal(t, "Rossi", resp.Name)

	// Creating a second family for the same user conflicts.
	w = env.request(t, http.MethodPost, "/api/v1/families", token, CreateFamilyRequest{Name: "Bianchi"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestFamilyScopedRoutesRequireMembership(t *testing.T) {
	env := setupTestEnv(t)
	token := env.registerUser(t, "Maria", "maria@example.com")

	w := env.request(t, http.MethodGet, "/api/v1/family", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.request(t, http.MethodGet, "/api/v1/dishes", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestInviteAndAccept(t *testing.T) {
	env := setupTestEnv(t)
	ownerToken, familyID := env.setupMember(t, "owner@example.com")

	w := env.request(t, http.MethodPost, "/api/v1/family/invites", ownerToken, InviteRequest{
		Email: "guest@example.com",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var inviteResp struct {
		Token string `json:"token"`
	}
	decodeJSON(t, w, &inviteResp)
	require.NotEmpty(t, inviteResp.Token)

	guestToken := env.registerUser(t, "Guest", "guest@example.com")
	w = env.request(t, http.MethodPost, "/api/v1/families/accept-invite", guestToken, AcceptInviteRequest{
		Token: inviteResp.Token,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var family struct {
		ID string `json:"id"`
	}
	decodeJSON(t, w, &family)
	assert.Equal(t, familyID.String(), family.ID)

	// The guest now sees the shared family.
	w = env.request(t, http.MethodGet, "/api/v1/family/members", guestToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var members struct {
		Members []struct {
			Email string `json:"email"`
		} `json:"members"`
	}
	decodeJSON(t, w, &members)
	assert.Len(t, members.Members, 2)

	// A used invite cannot be accepted again.
	otherToken := env.registerUser(t, "Other", "other@example.com")
	w = env.request(t, http.MethodPost, "/api/v1/families/accept-invite", otherToken, AcceptInviteRequest{
		Token: inviteResp.Token,
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAcceptInviteUnknownToken(t *testing.T) {
	env := setupTestEnv(t)
	token := env.registerUser(t, "Maria", "maria@example.com")

	w := env.request(t, http.MethodPost, "/api/v1/families/accept-invite", token, AcceptInviteRequest{
		Token: "0000000000000000000000000000000000000000000000000000000000000000",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
