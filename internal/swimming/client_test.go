package swimming

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string, interval time.Duration) *APIClient {
	return NewClient(Options{
		BaseURL:  url,
		Timeout:  2 * time.Second,
		Interval: interval,
	})
}

func TestSearch_SendsQueryAndBrowserHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/public/search", r.URL.Path)
		assert.Equal(t, "Jan Novak", r.URL.Query().Get("query"))
		assert.Equal(t, "application/json, text/plain, */*", r.Header.Get("Accept"))
		assert.Equal(t, "https://vysledky.czechswimming.cz/", r.Header.Get("Referer"))
		assert.Equal(t, "https://vysledky.czechswimming.cz", r.Header.Get("Origin"))
		assert.Contains(t, r.Header.Get("User-Agent"), "Mozilla/5.0")
		assert.Equal(t, "1", r.Header.Get("DNT"))
		assert.Equal(t, "cors", r.Header.Get("Sec-Fetch-Mode"))
		assert.Equal(t, "max-age=0", r.Header.Get("Cache-Control"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintln(w, `[{"firstName":"Jan","lastName":"Novak","userId":"123","clubAbbrev":"PKHK","birthYear":2010}]`)
	}))
	defer server.Close()

	client := newTestClient(server.URL+"/api/public/search", 0)
	people, err := client.Search(context.Background(), "Jan Novak")

	require.NoError(t, err)
	require.Len(t, people, 1)
	assert.Equal(t, Person{FirstName: "Jan", LastName: "Novak", UserID: "123", ClubAbbrev: "PKHK"}, people[0])
}

func TestSearch_ObjectEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `{"total":2,"results":[{"firstName":"A","lastName":"B","userId":1,"clubAbbrev":"PKHK"},{"firstName":"C","lastName":"D","userId":2,"clubAbbrev":"SKP"}]}`)
	}))
	defer server.Close()

	people, err := newTestClient(server.URL, 0).Search(context.Background(), "A B")

	require.NoError(t, err)
	require.Len(t, people, 2)
	assert.Equal(t, UserID("1"), people[0].UserID)
	assert.Equal(t, "SKP", people[1].ClubAbbrev)
}

func TestSearch_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprintln(w, "blocked")
	}))
	defer server.Close()

	people, err := newTestClient(server.URL, 0).Search(context.Background(), "Jan Novak")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
	assert.Nil(t, people)
}

func TestSearch_MalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `<html>maintenance</html>`)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL, 0).Search(context.Background(), "Jan Novak")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDecode)
}

func TestSearch_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer server.Close()

	client := NewClient(Options{BaseURL: server.URL, Timeout: 50 * time.Millisecond})
	_, err := client.Search(context.Background(), "Jan Novak")

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDecode)
}

func TestSearch_ThrottlesConsecutiveRequests(t *testing.T) {
	var (
		mu       sync.Mutex
		arrivals []time.Time
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		arrivals = append(arrivals, time.Now())
		mu.Unlock()
		fmt.Fprintln(w, `[]`)
	}))
	defer server.Close()

	const interval = 100 * time.Millisecond
	client := newTestClient(server.URL, interval)
	for i := 0; i < 3; i++ {
		_, err := client.Search(context.Background(), fmt.Sprintf("Name %d", i))
		require.NoError(t, err)
	}

	require.Len(t, arrivals, 3)
	for i := 1; i < len(arrivals); i++ {
		gap := arrivals[i].Sub(arrivals[i-1])
		assert.GreaterOrEqual(t, gap, interval-10*time.Millisecond, "request %d arrived too early", i)
	}
}

func TestSearch_CanceledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `[]`)
	}))
	defer server.Close()

	client := newTestClient(server.URL, time.Hour)
	_, err := client.Search(context.Background(), "first")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = client.Search(ctx, "second")
	assert.Error(t, err, "a canceled context must not wait out the throttle")
}

func TestSearch_KeepsValidRecordsNextToUndecodableOnes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"firstName":"Jan","lastName":"Novak","userId":123,"clubAbbrev":"PKHK"},{"firstName":"Petr","lastName":"Svoboda","userId":9,"clubAbbrev":42}]`)
	}))
	defer server.Close()

	people, err := newTestClient(server.URL, 0).Search(context.Background(), "Jan Novak")

	require.NoError(t, err)
	matches := FilterByClub(people, "PKHK")
	require.Len(t, matches, 1)
	assert.Equal(t, UserID("123"), matches[0].UserID)
}
