package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	httptestutil "github.com/uw-gac/phenotag/internal/testutils/http"
	"github.com/uw-gac/phenotag/pkg/domain"
	"github.com/uw-gac/phenotag/pkg/domain/identity"
	"github.com/uw-gac/phenotag/pkg/utils/cmp"
	"github.com/uw-gac/phenotag/pkg/utils/try"

	"github.com/uw-gac/phenotag/cmd/phenotagd/handlers"
)

func TestBearerAuth(t *testing.T) {
	signKey := []byte("middleware-test-key")

	t.Run("when the token is valid, it should pass the actor through", func(t *testing.T) {
		want := domain.Actor{
			Name: "curator", DCC: true,
			Taggable:   []int64{7, 11},
			Represents: []int64{},
		}
		token := try.To(identity.Issue(want, signKey, time.Hour)).OrFatal(t)

		e := echo.New()
		c, _ := httptestutil.Get(
			e, "/api/tagged-variables/",
			httptestutil.WithHeader(echo.HeaderAuthorization, "Bearer "+token),
		)

		got := domain.Actor{}
		next := func(c echo.Context) error {
			actor, ok := handlers.ActorOf(c)
			if !ok {
				t.Fatal("no actor in context")
			}
			got = actor
			return nil
		}

		testee := handlers.BearerAuth(signKey)(next)
		if err := testee(c); err != nil {
			t.Fatal(err)
		}

		if got.Name != want.Name || got.DCC != want.DCC {
			t.Errorf("actor: got %+v, want %+v", got, want)
		}
		if !cmp.SliceEq(got.Taggable, want.Taggable) {
			t.Errorf("taggable: got %v, want %v", got.Taggable, want.Taggable)
		}
	})

	t.Run("when the Authorization header is absent, it should respond 401", func(t *testing.T) {
		e := echo.New()
		c, _ := httptestutil.Get(e, "/api/tagged-variables/")

		next := func(c echo.Context) error {
			t.Fatal("it should not be reached")
			return nil
		}

		testee := handlers.BearerAuth(signKey)(next)
		assertStatusCode(t, testee(c), http.StatusUnauthorized)
	})

	t.Run("when the token is signed with another key, it should respond 401", func(t *testing.T) {
		token := try.To(identity.Issue(
			domain.Actor{Name: "curator", DCC: true}, []byte("some other key"), time.Hour,
		)).OrFatal(t)

		e := echo.New()
		c, _ := httptestutil.Get(
			e, "/api/tagged-variables/",
			httptestutil.WithHeader(echo.HeaderAuthorization, "Bearer "+token),
		)

		next := func(c echo.Context) error {
			t.Fatal("it should not be reached")
			return nil
		}

		testee := handlers.BearerAuth(signKey)(next)
		assertStatusCode(t, testee(c), http.StatusUnauthorized)
	})

	t.Run("when the header is not a bearer token, it should respond 401", func(t *testing.T) {
		e := echo.New()
		c, _ := httptestutil.Get(
			e, "/api/tagged-variables/",
			httptestutil.WithHeader(echo.HeaderAuthorization, "Basic dXNlcjpwYXNz"),
		)

		next := func(c echo.Context) error {
			t.Fatal("it should not be reached")
			return nil
		}

		testee := handlers.BearerAuth(signKey)(next)
		assertStatusCode(t, testee(c), http.StatusUnauthorized)
	})
}
