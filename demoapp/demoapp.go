// Package demoapp is a small item service used as a system under test by the command-line runner
// and by the scenario tests.
package demoapp

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/launchdarkly/webproxy-adapter/harness"
)

const visitsAttribute = "visits"

// Item is a stored resource.
type Item struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// App serves the item API. The zero value is not usable; call New.
type App struct {
	router chi.Router
	items  map[int]Item
	lastID int
	lock   sync.Mutex
}

// New creates an App whose store already contains the given items. IDs for new items are
// allocated after the highest existing one.
func New(initial ...Item) *App {
	a := &App{items: make(map[int]Item)}
	for _, item := range initial {
		a.items[item.ID] = item
		if item.ID > a.lastID {
			a.lastID = item.ID
		}
	}

	r := chi.NewRouter()
	r.Get("/items", a.listItems)
	r.Post("/items", a.createItem)
	r.Get("/items/{id}", a.getItem)
	r.Delete("/items/{id}", a.deleteItem)
	r.Options("/items", a.itemsOptions)
	r.Get("/session/visits", a.countVisit)
	r.Get("/binary", a.binary)
	r.Get("/boom", a.boom)
	a.router = r
	return a
}

func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

func (a *App) listItems(w http.ResponseWriter, r *http.Request) {
	a.lock.Lock()
	items := make([]Item, 0, len(a.items))
	for _, item := range a.items {
		items = append(items, item)
	}
	a.lock.Unlock()
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	writeJSON(w, http.StatusOK, items)
}

func (a *App) createItem(w http.ResponseWriter, r *http.Request) {
	name := r.FormValue("name")
	if name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	a.lock.Lock()
	a.lastID++
	item := Item{ID: a.lastID, Name: name}
	a.items[item.ID] = item
	a.lock.Unlock()

	w.Header().Set("Location", fmt.Sprintf("/items/%d", item.ID))
	writeJSON(w, http.StatusCreated, item)
}

func (a *App) getItem(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(w, r)
	if !ok {
		return
	}
	a.lock.Lock()
	item, found := a.items[id]
	a.lock.Unlock()
	if !found {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (a *App) deleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(w, r)
	if !ok {
		return
	}
	a.lock.Lock()
	_, found := a.items[id]
	delete(a.items, id)
	a.lock.Unlock()
	if !found {
		http.NotFound(w, r)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) itemsOptions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Allow", "GET, POST, OPTIONS")
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) countVisit(w http.ResponseWriter, r *http.Request) {
	s, ok := harness.SessionFrom(r)
	if !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}
	count, _ := s.Attribute(visitsAttribute)
	n, _ := count.(int)
	n++
	s.SetAttribute(visitsAttribute, n)
	writeJSON(w, http.StatusOK, map[string]int{"visits": n})
}

func (a *App) binary(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/octet-stream")
	_, _ = w.Write([]byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0xff})
}

func (a *App) boom(w http.ResponseWriter, r *http.Request) {
	panic("demo handler failure")
}

func itemID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid item id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
