// Command vendorstub serves an in-memory copy of the platform's member API
// so a migration run can be rehearsed end-to-end before touching production.
// Seed it with a JSON file in the backup format and point ssomigrate's
// --api-base-url at it.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/harborline/sso-migrate/internal/domain"
	"github.com/harborline/sso-migrate/internal/ports/out/vendorapi"
)

func main() {
	var (
		addr   = flag.String("addr", ":8787", "listen address")
		teamID = flag.String("team-id", "team-1", "team id the stub answers for")
		apiKey = flag.String("api-key", "stub-key", "API key the stub accepts")
		seed   = flag.String("seed", "", "JSON member array to seed the team with (backup format)")
	)
	flag.Parse()

	st := &state{teamID: domain.TeamID(*teamID), apiKey: *apiKey}
	if *seed != "" {
		data, err := os.ReadFile(*seed)
		if err != nil {
			log.Fatalf("read seed file: %v", err)
		}
		if err := json.Unmarshal(data, &st.members); err != nil {
			log.Fatalf("parse seed file: %v", err)
		}
	}

	log.Printf("vendorstub listening on %s (team %s, %d members)", *addr, *teamID, len(st.members))
	if err := http.ListenAndServe(*addr, newRouter(st)); err != nil {
		log.Fatal(err)
	}
}

type state struct {
	mu      sync.Mutex
	teamID  domain.TeamID
	apiKey  string
	members []domain.Member
	invites []vendorapi.InviteRequest
}

func newRouter(st *state) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/members", func(r chi.Router) {
		r.Use(st.auth)
		r.Get("/", st.list)
		r.Post("/", st.invite)
		r.Patch("/", st.update)
		r.Delete("/", st.delete)
	})
	return r
}

func (st *state) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != st.apiKey {
			respond(w, http.StatusUnauthorized, map[string]string{"error": "invalid api key"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (st *state) list(w http.ResponseWriter, r *http.Request) {
	if domain.TeamID(r.URL.Query().Get("teamId")) != st.teamID {
		respond(w, http.StatusForbidden, map[string]string{"error": "unknown team"})
		return
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	respond(w, http.StatusOK, map[string]any{"members": st.members})
}

func (st *state) invite(w http.ResponseWriter, r *http.Request) {
	var req vendorapi.InviteRequest
	if !decode(w, r, &req) {
		return
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	st.invites = append(st.invites, req)
	respond(w, http.StatusCreated, map[string]string{"status": "invited", "email": req.Email})
}

func (st *state) update(w http.ResponseWriter, r *http.Request) {
	var req vendorapi.UpdateRequest
	if !decode(w, r, &req) {
		return
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	for i, m := range st.members {
		if m.Subject == req.Subject {
			st.members[i].Name = req.Name
			st.members[i].Email = req.Email
			st.members[i].IsTeamAdmin = req.IsAdmin
			respond(w, http.StatusOK, map[string]string{"status": "updated"})
			return
		}
	}
	respond(w, http.StatusNotFound, map[string]string{"error": fmt.Sprintf("no member %s", req.Subject)})
}

func (st *state) delete(w http.ResponseWriter, r *http.Request) {
	var req vendorapi.DeleteRequest
	if !decode(w, r, &req) {
		return
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	for i, m := range st.members {
		if m.Subject == req.Subject {
			st.members = append(st.members[:i], st.members[i+1:]...)
			respond(w, http.StatusOK, map[string]string{"status": "deleted"})
			return
		}
	}
	respond(w, http.StatusNotFound, map[string]string{"error": fmt.Sprintf("no member %s", req.Subject)})
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return false
	}
	return true
}

func respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
