package userwebserver

import (
	"net/http"
	"strconv"

	"github.com/go-chi/render"
	"github.com/gorilla/mux"
	"github.com/jamesrr39/users-cluster-app/userstore/domain"
	"github.com/jamesrr39/users-cluster-app/userstore/service"
)

// userHandlerFunc returns either the users to send back, or the error to report. Never both.
type userHandlerFunc func(r *http.Request) ([]*domain.User, *HTTPError)

// handle writes the result of a userHandlerFunc to the response, and logs exactly one event for it
func (s *UserWebServer) handle(operation string, handlerFunc userHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, httpErr := handlerFunc(r)
		if nil != httpErr {
			s.logger.Error("%s %s failed. Error: %s", r.Method, r.URL.Path, httpErr.Error())
			http.Error(w, httpErr.Error(), httpErr.StatusCode)
			return
		}

		s.logger.Info("%s (%s %s, %d users in result)", operation, r.Method, r.URL.Path, len(users))
		render.JSON(w, r, users)
	}
}

func (s *UserWebServer) handleGetUserByID(r *http.Request) ([]*domain.User, *HTTPError) {
	id, httpErr := userIDFromPath(r)
	if nil != httpErr {
		return nil, httpErr
	}

	return service.GetUserByID(s.store, id), nil
}

func (s *UserWebServer) handleInsertUser(r *http.Request) ([]*domain.User, *HTTPError) {
	user, httpErr := userFromBody(r)
	if nil != httpErr {
		return nil, httpErr
	}

	return service.InsertUser(s.store, user), nil
}

func (s *UserWebServer) handleUpdateUser(r *http.Request) ([]*domain.User, *HTTPError) {
	user, httpErr := userFromBody(r)
	if nil != httpErr {
		return nil, httpErr
	}

	return service.UpdateUser(s.store, user), nil
}

func (s *UserWebServer) handleDeleteUserByID(r *http.Request) ([]*domain.User, *HTTPError) {
	id, httpErr := userIDFromPath(r)
	if nil != httpErr {
		return nil, httpErr
	}

	return service.DeleteUserByID(s.store, id), nil
}

func userIDFromPath(r *http.Request) (int64, *HTTPError) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if nil != err {
		return 0, NewBadRequestError(err)
	}

	return id, nil
}

func userFromBody(r *http.Request) (*domain.User, *HTTPError) {
	var user domain.User
	err := render.DecodeJSON(r.Body, &user)
	if nil != err {
		return nil, NewBadRequestError(err)
	}

	return domain.NewUser(user.ID, user.Name, user.Email), nil
}
