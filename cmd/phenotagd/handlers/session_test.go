package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	httptestutil "github.com/uw-gac/phenotag/internal/testutils/http"
	apisessions "github.com/uw-gac/phenotag/pkg/api/types/sessions"
	"github.com/uw-gac/phenotag/pkg/domain"
	reviewmocks "github.com/uw-gac/phenotag/pkg/domain/review/db/mock"
	"github.com/uw-gac/phenotag/pkg/domain/session"
	taggingmocks "github.com/uw-gac/phenotag/pkg/domain/tagging/db/mock"
	"github.com/uw-gac/phenotag/pkg/utils/try"

	"github.com/uw-gac/phenotag/cmd/phenotagd/handlers"
)

// storeFake keeps sessions in a map, without TTL.
type storeFake struct {
	entries map[string]session.Session
}

func newStoreFake() *storeFake {
	return &storeFake{entries: map[string]session.Session{}}
}

func (s *storeFake) Put(_ context.Context, sn session.Session) error {
	s.entries[sn.Actor+"/"+string(sn.Namespace)] = sn
	return nil
}

func (s *storeFake) Get(_ context.Context, actor string, ns session.Namespace) (session.Session, error) {
	sn, ok := s.entries[actor+"/"+string(ns)]
	if !ok {
		return session.Session{}, session.ErrNoSession
	}
	return sn, nil
}

func (s *storeFake) Delete(_ context.Context, actor string, ns session.Namespace) error {
	delete(s.entries, actor+"/"+string(ns))
	return nil
}

func reviewLoopFixture(t *testing.T) (*session.Coordinator, *taggingmocks.TaggingInterface) {
	t.Helper()

	mckReview := reviewmocks.NewReviewInterface()
	mckReview.Impl.UnreviewedIds = func(ctx context.Context, tagId int64, studyId int64) ([]int64, error) {
		return []int64{3, 5, 8}, nil
	}

	mckTagging := taggingmocks.NewTaggingInterface()
	mckTagging.Impl.Get = func(ctx context.Context, ids []int64) (map[int64]domain.TaggedVariableState, error) {
		states := map[int64]domain.TaggedVariableState{}
		for _, id := range ids {
			states[id] = domain.TaggedVariableState{
				TaggedVariable: domain.TaggedVariable{
					Id: id, TagId: 42,
					Variable: domain.VariableRef{
						Id: 100 + id, StudyId: 7,
						Accession: domain.Accession{Phv: 800 + id, Version: 1, ParticipantSet: 1},
					},
				},
			}
		}
		return states, nil
	}

	coordinator := session.NewCoordinator(newStoreFake(), map[session.Namespace]session.Candidates{
		session.ReviewLoop: mckReview.UnreviewedIds,
	})
	return coordinator, mckTagging
}

func startSession(
	t *testing.T, coordinator *session.Coordinator, mckTagging *taggingmocks.TaggingInterface,
) apisessions.Detail {
	t.Helper()

	e := echo.New()
	body := try.To(json.Marshal(apisessions.StartRequest{Tag: 42, Study: 7})).OrFatal(t)
	c, respRec := httptestutil.Post(e, "/api/sessions/review/", bytes.NewReader(body))
	c.SetPath("/api/sessions/:namespace/")
	c.SetParamNames("namespace")
	c.SetParamValues("review")
	handlers.SetActor(c, curator)

	testee := handlers.StartSessionHandler(coordinator, mckTagging)
	if err := testee(c); err != nil {
		t.Fatal(err)
	}
	if respRec.Code != http.StatusCreated {
		t.Fatalf("status code: got %d, want %d", respRec.Code, http.StatusCreated)
	}

	detail := apisessions.Detail{}
	if err := json.Unmarshal(respRec.Body.Bytes(), &detail); err != nil {
		t.Fatal(err)
	}
	return detail
}

func TestStartSessionHandler(t *testing.T) {

	t.Run("it should open a loop at the first candidate", func(t *testing.T) {
		coordinator, mckTagging := reviewLoopFixture(t)

		detail := startSession(t, coordinator, mckTagging)

		if detail.Namespace != "review" || detail.Tag != 42 || detail.Study != 7 {
			t.Errorf("scope: %+v", detail)
		}
		if detail.Total != 3 || detail.Position != 0 || detail.Done {
			t.Errorf("progress: %+v", detail)
		}
		if detail.Current == nil || detail.Current.Id != 3 {
			t.Errorf("current: %+v", detail.Current)
		}
	})

	t.Run("when nothing needs review, it should respond 404", func(t *testing.T) {
		mckReview := reviewmocks.NewReviewInterface()
		mckReview.Impl.UnreviewedIds = func(ctx context.Context, tagId int64, studyId int64) ([]int64, error) {
			return []int64{}, nil
		}
		coordinator := session.NewCoordinator(newStoreFake(), map[session.Namespace]session.Candidates{
			session.ReviewLoop: mckReview.UnreviewedIds,
		})

		e := echo.New()
		body := try.To(json.Marshal(apisessions.StartRequest{Tag: 42, Study: 7})).OrFatal(t)
		c, _ := httptestutil.Post(e, "/api/sessions/review/", bytes.NewReader(body))
		c.SetPath("/api/sessions/:namespace/")
		c.SetParamNames("namespace")
		c.SetParamValues("review")
		handlers.SetActor(c, curator)

		testee := handlers.StartSessionHandler(coordinator, taggingmocks.NewTaggingInterface())
		assertStatusCode(t, testee(c), http.StatusNotFound)
	})

	t.Run("when the namespace is unknown, it should respond 400", func(t *testing.T) {
		coordinator, mckTagging := reviewLoopFixture(t)

		e := echo.New()
		body := try.To(json.Marshal(apisessions.StartRequest{Tag: 42, Study: 7})).OrFatal(t)
		c, _ := httptestutil.Post(e, "/api/sessions/triage/", bytes.NewReader(body))
		c.SetPath("/api/sessions/:namespace/")
		c.SetParamNames("namespace")
		c.SetParamValues("triage")
		handlers.SetActor(c, curator)

		testee := handlers.StartSessionHandler(coordinator, mckTagging)
		assertStatusCode(t, testee(c), http.StatusBadRequest)
	})
}

func TestSessionLoopHandlers(t *testing.T) {

	t.Run("next should advance to the following item", func(t *testing.T) {
		coordinator, mckTagging := reviewLoopFixture(t)
		startSession(t, coordinator, mckTagging)

		e := echo.New()
		c, respRec := httptestutil.Post(e, "/api/sessions/review/next/", nil)
		c.SetPath("/api/sessions/:namespace/next/")
		c.SetParamNames("namespace")
		c.SetParamValues("review")
		handlers.SetActor(c, curator)

		testee := handlers.AdvanceSessionHandler(coordinator, mckTagging)
		if err := testee(c); err != nil {
			t.Fatal(err)
		}

		detail := apisessions.Detail{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &detail); err != nil {
			t.Fatal(err)
		}
		if detail.Position != 1 || detail.Current == nil || detail.Current.Id != 5 {
			t.Errorf("unexpected state after next: %+v", detail)
		}
	})

	t.Run("skip should remember the passed-over item", func(t *testing.T) {
		coordinator, mckTagging := reviewLoopFixture(t)
		startSession(t, coordinator, mckTagging)

		e := echo.New()
		c, respRec := httptestutil.Post(e, "/api/sessions/review/skip/", nil)
		c.SetPath("/api/sessions/:namespace/skip/")
		c.SetParamNames("namespace")
		c.SetParamValues("review")
		handlers.SetActor(c, curator)

		testee := handlers.SkipSessionHandler(coordinator, mckTagging)
		if err := testee(c); err != nil {
			t.Fatal(err)
		}

		detail := apisessions.Detail{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &detail); err != nil {
			t.Fatal(err)
		}
		if len(detail.Skipped) != 1 || detail.Skipped[0] != 3 {
			t.Errorf("skipped: %v", detail.Skipped)
		}
		if detail.Current == nil || detail.Current.Id != 5 {
			t.Errorf("current: %+v", detail.Current)
		}
	})

	t.Run("a finished loop should respond 200 with done set", func(t *testing.T) {
		coordinator, mckTagging := reviewLoopFixture(t)
		startSession(t, coordinator, mckTagging)

		advance := handlers.AdvanceSessionHandler(coordinator, mckTagging)
		for i := 0; i < 3; i++ {
			e := echo.New()
			c, _ := httptestutil.Post(e, "/api/sessions/review/next/", nil)
			c.SetPath("/api/sessions/:namespace/next/")
			c.SetParamNames("namespace")
			c.SetParamValues("review")
			handlers.SetActor(c, curator)
			if err := advance(c); err != nil {
				t.Fatal(err)
			}
		}

		e := echo.New()
		c, respRec := httptestutil.Get(e, "/api/sessions/review/current/")
		c.SetPath("/api/sessions/:namespace/current/")
		c.SetParamNames("namespace")
		c.SetParamValues("review")
		handlers.SetActor(c, curator)

		testee := handlers.CurrentSessionHandler(coordinator, mckTagging)
		if err := testee(c); err != nil {
			t.Fatal(err)
		}
		if respRec.Code != http.StatusOK {
			t.Errorf("status code: got %d, want %d", respRec.Code, http.StatusOK)
		}

		detail := apisessions.Detail{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &detail); err != nil {
			t.Fatal(err)
		}
		if !detail.Done || detail.Current != nil {
			t.Errorf("unexpected state after finishing: %+v", detail)
		}
	})

	t.Run("current without a session should respond 404", func(t *testing.T) {
		coordinator, mckTagging := reviewLoopFixture(t)

		e := echo.New()
		c, _ := httptestutil.Get(e, "/api/sessions/review/current/")
		c.SetPath("/api/sessions/:namespace/current/")
		c.SetParamNames("namespace")
		c.SetParamValues("review")
		handlers.SetActor(c, curator)

		testee := handlers.CurrentSessionHandler(coordinator, mckTagging)
		assertStatusCode(t, testee(c), http.StatusNotFound)
	})

	t.Run("ending the loop should report the skips and drop the session", func(t *testing.T) {
		coordinator, mckTagging := reviewLoopFixture(t)
		startSession(t, coordinator, mckTagging)

		{
			e := echo.New()
			c, _ := httptestutil.Post(e, "/api/sessions/review/skip/", nil)
			c.SetPath("/api/sessions/:namespace/skip/")
			c.SetParamNames("namespace")
			c.SetParamValues("review")
			handlers.SetActor(c, curator)
			if err := handlers.SkipSessionHandler(coordinator, mckTagging)(c); err != nil {
				t.Fatal(err)
			}
		}

		e := echo.New()
		c, respRec := httptestutil.Delete(e, "/api/sessions/review/")
		c.SetPath("/api/sessions/:namespace/")
		c.SetParamNames("namespace")
		c.SetParamValues("review")
		handlers.SetActor(c, curator)

		testee := handlers.EndSessionHandler(coordinator)
		if err := testee(c); err != nil {
			t.Fatal(err)
		}

		detail := apisessions.Detail{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &detail); err != nil {
			t.Fatal(err)
		}
		if len(detail.Skipped) != 1 || detail.Skipped[0] != 3 {
			t.Errorf("skipped: %v", detail.Skipped)
		}

		{
			c, _ := httptestutil.Get(e, "/api/sessions/review/current/")
			c.SetPath("/api/sessions/:namespace/current/")
			c.SetParamNames("namespace")
			c.SetParamValues("review")
			handlers.SetActor(c, curator)
			assertStatusCode(
				t, handlers.CurrentSessionHandler(coordinator, mckTagging)(c),
				http.StatusNotFound,
			)
		}
	})
}
