package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	httptestutil "github.com/uw-gac/phenotag/internal/testutils/http"
	apireview "github.com/uw-gac/phenotag/pkg/api/types/review"
	"github.com/uw-gac/phenotag/pkg/domain"
	reviewmocks "github.com/uw-gac/phenotag/pkg/domain/review/db/mock"
	"github.com/uw-gac/phenotag/pkg/utils/try"

	"github.com/uw-gac/phenotag/cmd/phenotagd/handlers"
)

var representative = domain.Actor{Name: "study-rep", Represents: []int64{7}}

func TestAddStudyResponseHandler(t *testing.T) {

	t.Run("when the review needs followup, it should respond the created response", func(t *testing.T) {
		mckReview := reviewmocks.NewReviewInterface()
		mckReview.Impl.AddStudyResponse = func(ctx context.Context, dccReviewId int64, attr domain.ResponseAttr, actor domain.Actor) (domain.StudyResponse, error) {
			return domain.StudyResponse{
				Id: 21, DCCReviewId: dccReviewId,
				Status: attr.Status, Comment: attr.Comment, Creator: actor.Name,
			}, nil
		}

		e := echo.New()
		body := try.To(json.Marshal(apireview.ResponseSpec{Status: "agree"})).OrFatal(t)
		c, respRec := httptestutil.Post(e, "/api/dcc-reviews/9/study-response/", bytes.NewReader(body))
		c.SetPath("/api/dcc-reviews/:dccReviewId/study-response/")
		c.SetParamNames("dccReviewId")
		c.SetParamValues("9")
		handlers.SetActor(c, representative)

		testee := handlers.AddStudyResponseHandler(mckReview)
		if err := testee(c); err != nil {
			t.Fatal(err)
		}

		if respRec.Code != http.StatusCreated {
			t.Errorf("status code: got %d, want %d", respRec.Code, http.StatusCreated)
		}
		call := mckReview.Calls.AddStudyResponse[0]
		if call.DCCReviewId != 9 || call.Attr.Status != domain.ResponseAgree {
			t.Errorf("AddStudyResponse called with %+v", call)
		}

		actual := apireview.ResponseDetail{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &actual); err != nil {
			t.Fatal(err)
		}
		if actual.Id != 21 || actual.Status != "agree" {
			t.Errorf("unexpected response: %+v", actual)
		}
	})

	t.Run("when disagreeing without a comment, it should respond 400 without touching the store", func(t *testing.T) {
		mckReview := reviewmocks.NewReviewInterface()
		mckReview.Impl.AddStudyResponse = func(ctx context.Context, dccReviewId int64, attr domain.ResponseAttr, actor domain.Actor) (domain.StudyResponse, error) {
			return domain.StudyResponse{}, fmt.Errorf(
				"%w: comment is required to disagree with removal", domain.ErrValidation,
			)
		}

		e := echo.New()
		body := try.To(json.Marshal(apireview.ResponseSpec{Status: "disagree"})).OrFatal(t)
		c, _ := httptestutil.Post(e, "/api/dcc-reviews/9/study-response/", bytes.NewReader(body))
		c.SetPath("/api/dcc-reviews/:dccReviewId/study-response/")
		c.SetParamNames("dccReviewId")
		c.SetParamValues("9")
		handlers.SetActor(c, representative)

		testee := handlers.AddStudyResponseHandler(mckReview)
		assertStatusCode(t, testee(c), http.StatusBadRequest)
	})

	t.Run("when the actor does not represent the study, it should respond 403", func(t *testing.T) {
		mckReview := reviewmocks.NewReviewInterface()
		mckReview.Impl.AddStudyResponse = func(ctx context.Context, dccReviewId int64, attr domain.ResponseAttr, actor domain.Actor) (domain.StudyResponse, error) {
			return domain.StudyResponse{}, domain.ErrPermissionDenied
		}

		e := echo.New()
		body := try.To(json.Marshal(apireview.ResponseSpec{Status: "agree"})).OrFatal(t)
		c, _ := httptestutil.Post(e, "/api/dcc-reviews/9/study-response/", bytes.NewReader(body))
		c.SetPath("/api/dcc-reviews/:dccReviewId/study-response/")
		c.SetParamNames("dccReviewId")
		c.SetParamValues("9")
		handlers.SetActor(c, domain.Actor{Name: "other-rep", Represents: []int64{8}})

		testee := handlers.AddStudyResponseHandler(mckReview)
		assertStatusCode(t, testee(c), http.StatusForbidden)
	})

	t.Run("when a response already exists, it should respond 409", func(t *testing.T) {
		mckReview := reviewmocks.NewReviewInterface()
		mckReview.Impl.AddStudyResponse = func(ctx context.Context, dccReviewId int64, attr domain.ResponseAttr, actor domain.Actor) (domain.StudyResponse, error) {
			return domain.StudyResponse{}, domain.ErrSuperseded
		}

		e := echo.New()
		body := try.To(json.Marshal(apireview.ResponseSpec{Status: "agree"})).OrFatal(t)
		c, _ := httptestutil.Post(e, "/api/dcc-reviews/9/study-response/", bytes.NewReader(body))
		c.SetPath("/api/dcc-reviews/:dccReviewId/study-response/")
		c.SetParamNames("dccReviewId")
		c.SetParamValues("9")
		handlers.SetActor(c, representative)

		testee := handlers.AddStudyResponseHandler(mckReview)
		assertStatusCode(t, testee(c), http.StatusConflict)
	})
}
