package http

import (
	"fmt"
	"net/http"
	"testing"
)

func TestSendFriendRequestHandler(t *testing.T) {
	env := newTestEnv(t)
	_, cookieA := env.signup(t, "a@x.com", "Ana")
	userB, _ := env.signup(t, "b@x.com", "Bea")
	idB := userB["id"].(string)

	rec := env.do(t, http.MethodPost, "/api/users/friend-request/"+idB, nil, cookieA)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	fr := decodeBody(t, rec)["friendRequest"].(map[string]any)
	if fr["status"] != "pending" || fr["toId"] != idB {
		t.Fatalf("unexpected friend request: %v", fr)
	}

	// Duplicado sobre el mismo par ordenado.
	dup := env.do(t, http.MethodPost, "/api/users/friend-request/"+idB, nil, cookieA)
	if dup.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 on duplicate, got %d", dup.Code)
	}
}

func TestSendFriendRequestHandler_SelfAndUnknown(t *testing.T) {
	env := newTestEnv(t)
	userA, cookieA := env.signup(t, "a@x.com", "Ana")
	idA := userA["id"].(string)

	self := env.do(t, http.MethodPost, "/api/users/friend-request/"+idA, nil, cookieA)
	if self.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for self request, got %d", self.Code)
	}
	unknown := env.do(t, http.MethodPost, "/api/users/friend-request/missing", nil, cookieA)
	if unknown.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown recipient, got %d", unknown.Code)
	}
}

func TestAcceptFriendRequestHandler(t *testing.T) {
	env := newTestEnv(t)
	_, cookieA := env.signup(t, "a@x.com", "Ana")
	userB, cookieB := env.signup(t, "b@x.com", "Bea")
	idB := userB["id"].(string)

	rec := env.do(t, http.MethodPost, "/api/users/friend-request/"+idB, nil, cookieA)
	if rec.Code != http.StatusCreated {
		t.Fatalf("send request: got %d", rec.Code)
	}
	frID := decodeBody(t, rec)["friendRequest"].(map[string]any)["id"].(string)

	// Solo el destinatario puede aceptar.
	forbidden := env.do(t, http.MethodPut, "/api/users/friend-request/"+frID+"/accept", nil, cookieA)
	if forbidden.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for sender, got %d", forbidden.Code)
	}

	accepted := env.do(t, http.MethodPut, "/api/users/friend-request/"+frID+"/accept", nil, cookieB)
	if accepted.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", accepted.Code, accepted.Body.String())
	}
	fr := decodeBody(t, accepted)["friendRequest"].(map[string]any)
	if fr["status"] != "accepted" {
		t.Fatalf("expected accepted status, got %v", fr)
	}

	missing := env.do(t, http.MethodPut, "/api/users/friend-request/missing/accept", nil, cookieB)
	if missing.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown request, got %d", missing.Code)
	}

	// La amistad es simétrica.
	friendsA := env.do(t, http.MethodGet, "/api/users/friends", nil, cookieA)
	friendsB := env.do(t, http.MethodGet, "/api/users/friends", nil, cookieB)
	if friendsA.Code != http.StatusOK || friendsB.Code != http.StatusOK {
		t.Fatalf("list friends: got %d / %d", friendsA.Code, friendsB.Code)
	}
	listA := decodeBody(t, friendsA)["friends"].([]any)
	listB := decodeBody(t, friendsB)["friends"].([]any)
	if len(listA) != 1 || len(listB) != 1 {
		t.Fatalf("expected symmetric friendship, got %v / %v", listA, listB)
	}
}

func TestGetRecommendedUsersHandler(t *testing.T) {
	env := newTestEnv(t)
	_, cookieA := env.signup(t, "a@x.com", "Ana")
	userB, cookieB := env.signup(t, "b@x.com", "Bea")
	_, cookieC := env.signup(t, "c@x.com", "Carla")
	env.signup(t, "d@x.com", "Dora") // nunca onboarded

	env.onboard(t, cookieA, "Ana")
	env.onboard(t, cookieB, "Bea")
	env.onboard(t, cookieC, "Carla")

	idB := userB["id"].(string)
	rec := env.do(t, http.MethodPost, "/api/users/friend-request/"+idB, nil, cookieA)
	if rec.Code != http.StatusCreated {
		t.Fatalf("send request: got %d", rec.Code)
	}

	resp := env.do(t, http.MethodGet, "/api/users", nil, cookieA)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", resp.Code, resp.Body.String())
	}
	recommended := decodeBody(t, resp)["recommendedUsers"].([]any)
	// Quedan excluidos: Ana (self), Bea (solicitud saliente), Dora (sin onboarding).
	if len(recommended) != 1 {
		t.Fatalf("expected only Carla recommended, got %v", recommended)
	}
	if recommended[0].(map[string]any)["email"] != "c@x.com" {
		t.Fatalf("expected Carla, got %v", recommended[0])
	}
}

func TestGetOutgoingFriendRequestsHandler(t *testing.T) {
	env := newTestEnv(t)
	_, cookieA := env.signup(t, "a@x.com", "Ana")
	userB, _ := env.signup(t, "b@x.com", "Bea")
	idB := userB["id"].(string)

	if rec := env.do(t, http.MethodPost, "/api/users/friend-request/"+idB, nil, cookieA); rec.Code != http.StatusCreated {
		t.Fatalf("send request: got %d", rec.Code)
	}

	resp := env.do(t, http.MethodGet, "/api/users/outgoing-friend-requests", nil, cookieA)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	outgoing := decodeBody(t, resp)["outgoingRequests"].([]any)
	if len(outgoing) != 1 {
		t.Fatalf("expected one outgoing request, got %v", outgoing)
	}
	if outgoing[0].(map[string]any)["toId"] != idB {
		t.Fatalf("expected target %s, got %v", idB, outgoing[0])
	}
}

func TestGetFriendRequestsHandler(t *testing.T) {
	env := newTestEnv(t)
	_, cookieA := env.signup(t, "a@x.com", "Ana")
	userB, cookieB := env.signup(t, "b@x.com", "Bea")
	userC, cookieC := env.signup(t, "c@x.com", "Carla")
	idB := userB["id"].(string)
	idC := userC["id"].(string)

	// A -> B queda pendiente; A -> C se acepta.
	if rec := env.do(t, http.MethodPost, "/api/users/friend-request/"+idB, nil, cookieA); rec.Code != http.StatusCreated {
		t.Fatalf("send A->B: got %d", rec.Code)
	}
	rec := env.do(t, http.MethodPost, "/api/users/friend-request/"+idC, nil, cookieA)
	if rec.Code != http.StatusCreated {
		t.Fatalf("send A->C: got %d", rec.Code)
	}
	frID := decodeBody(t, rec)["friendRequest"].(map[string]any)["id"].(string)
	if acc := env.do(t, http.MethodPut, fmt.Sprintf("/api/users/friend-request/%s/accept", frID), nil, cookieC); acc.Code != http.StatusOK {
		t.Fatalf("accept A->C: got %d", acc.Code)
	}

	// B ve la solicitud entrante pendiente.
	respB := env.do(t, http.MethodGet, "/api/users/friend-requests", nil, cookieB)
	if respB.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", respB.Code)
	}
	bodyB := decodeBody(t, respB)
	if incoming := bodyB["incomingRequests"].([]any); len(incoming) != 1 {
		t.Fatalf("expected one incoming request for B, got %v", incoming)
	}

	// A ve su solicitud aceptada como notificación.
	respA := env.do(t, http.MethodGet, "/api/users/friend-requests", nil, cookieA)
	bodyA := decodeBody(t, respA)
	accepted := bodyA["acceptedRequests"].([]any)
	if len(accepted) != 1 || accepted[0].(map[string]any)["toId"] != idC {
		t.Fatalf("expected accepted A->C notification, got %v", accepted)
	}
}

func TestUserRoutes_RequireAuth(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{
		"/api/users",
		"/api/users/friends",
		"/api/users/outgoing-friend-requests",
		"/api/users/friend-requests",
	} {
		rec := env.do(t, http.MethodGet, path, nil)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 for %s without cookie, got %d", path, rec.Code)
		}
	}
}
