package characters

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI is a tiny in-memory characters API.
type fakeAPI struct {
	mu     sync.Mutex
	nextID int
	items  map[int]Character
}

func newFakeAPI(t *testing.T) *httptest.Server {
	api := &fakeAPI{nextID: 1, items: map[int]Character{}}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)
	return srv
}

func (a *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()

	path := strings.TrimPrefix(r.URL.Path, "/characters")
	if path == "" || path == "/" {
		switch r.Method {
		case http.MethodGet:
			out := make([]Character, 0, len(a.items))
			for id := 1; id < a.nextID; id++ {
				if c, ok := a.items[id]; ok {
					out = append(out, c)
				}
			}
			writeJSON(w, http.StatusOK, out)
		case http.MethodPost:
			var in CharacterInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Name == "" {
				http.Error(w, "name is required", http.StatusUnprocessableEntity)
				return
			}
			c := Character{ID: a.nextID, Name: in.Name, Occupation: in.Occupation, Cartoon: in.Cartoon, Weapon: in.Weapon}
			a.items[c.ID] = c
			a.nextID++
			writeJSON(w, http.StatusCreated, c)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	id, err := strconv.Atoi(strings.TrimPrefix(path, "/"))
	if err != nil {
		http.Error(w, "bad id", http.StatusBadRequest)
		return
	}
	c, ok := a.items[id]
	if !ok {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, c)
	case http.MethodPut:
		var in CharacterInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "bad body", http.StatusBadRequest)
			return
		}
		c = Character{ID: id, Name: in.Name, Occupation: in.Occupation, Cartoon: in.Cartoon, Weapon: in.Weapon}
		a.items[id] = c
		writeJSON(w, http.StatusOK, c)
	case http.MethodDelete:
		delete(a.items, id)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestClient_CRUD(t *testing.T) {
	ctx := context.Background()
	client := NewClient(newFakeAPI(t).URL)

	list, err := client.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	created, err := client.Create(ctx, CharacterInput{Name: "Bender", Occupation: "Robot", Cartoon: true, Weapon: "Arm"})
	require.NoError(t, err)
	assert.Equal(t, 1, created.ID)
	assert.Equal(t, "Bender", created.Name)

	got, err := client.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, *created, *got)

	updated, err := client.Update(ctx, created.ID, CharacterInput{Name: "Bender", Occupation: "Chef", Cartoon: true})
	require.NoError(t, err)
	assert.Equal(t, "Chef", updated.Occupation)

	list, err = client.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Chef", list[0].Occupation)

	require.NoError(t, client.Delete(ctx, created.ID))

	_, err = client.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_Errors(t *testing.T) {
	ctx := context.Background()
	client := NewClient(newFakeAPI(t).URL)

	t.Run("missing character", func(t *testing.T) {
		err := client.Delete(ctx, 42)
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = client.Update(ctx, 42, CharacterInput{Name: "x"})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("api error keeps status and body", func(t *testing.T) {
		_, err := client.Create(ctx, CharacterInput{})

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
		assert.Contains(t, apiErr.Body, "name is required")
	})

	t.Run("unreachable server", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()

		_, err := NewClient(srv.URL).List(ctx)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)
	})
}
