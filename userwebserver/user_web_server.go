package userwebserver

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jamesrr39/goutil/logpkg"
	"github.com/jamesrr39/users-cluster-app/userstore/service"
)

// ReplicaIDHeader is the response header naming the replica that served the request
const ReplicaIDHeader = "X-Replica-Id"

// UserWebServer serves the user HTTP API for a single replica
type UserWebServer struct {
	logger    *logpkg.Logger
	store     service.UserLister
	replicaID string
	router    *mux.Router
}

// NewUserWebServer creates a UserWebServer. Requests are served from the given store only; it is not shared with other replicas.
func NewUserWebServer(logger *logpkg.Logger, store service.UserLister, replicaID string) *UserWebServer {
	router := mux.NewRouter()

	s := &UserWebServer{logger, store, replicaID, router}

	router.HandleFunc("/user/{id}", s.handle("Retrieved", s.handleGetUserByID)).Methods("GET")
	router.HandleFunc("/user", s.handle("Inserted", s.handleInsertUser)).Methods("POST")
	router.HandleFunc("/user", s.handle("Updated", s.handleUpdateUser)).Methods("PUT")
	router.HandleFunc("/user/{id}", s.handle("Deleted", s.handleDeleteUserByID)).Methods("DELETE")

	return s
}

func (s *UserWebServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(ReplicaIDHeader, s.replicaID)
	s.router.ServeHTTP(w, r)
}
