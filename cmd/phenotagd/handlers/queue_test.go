package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	httptestutil "github.com/uw-gac/phenotag/internal/testutils/http"
	apiqueue "github.com/uw-gac/phenotag/pkg/api/types/queue"
	reviewmocks "github.com/uw-gac/phenotag/pkg/domain/review/db/mock"

	"github.com/uw-gac/phenotag/cmd/phenotagd/handlers"
)

func TestReviewQueueHandler(t *testing.T) {

	t.Run("it should respond both counts for the scope", func(t *testing.T) {
		mckReview := reviewmocks.NewReviewInterface()
		mckReview.Impl.CountUnreviewed = func(ctx context.Context, tagId int64, studyId int64) (int, error) {
			return 12, nil
		}
		mckReview.Impl.CountDecisionPending = func(ctx context.Context, tagId int64, studyId int64) (int, error) {
			return 3, nil
		}

		e := echo.New()
		c, respRec := httptestutil.Get(e, "/api/review-queue/?tag=42&study=7")

		testee := handlers.ReviewQueueHandler(mckReview)
		if err := testee(c); err != nil {
			t.Fatal(err)
		}

		if mckReview.Calls.CountUnreviewed.Times() != 1 ||
			mckReview.Calls.CountUnreviewed[0].TagId != 42 ||
			mckReview.Calls.CountUnreviewed[0].StudyId != 7 {
			t.Errorf("CountUnreviewed calls: %+v", mckReview.Calls.CountUnreviewed)
		}

		actual := apiqueue.Summary{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &actual); err != nil {
			t.Fatal(err)
		}
		expected := apiqueue.Summary{Tag: 42, Study: 7, Unreviewed: 12, DecisionPending: 3}
		if actual != expected {
			t.Errorf("unexpected response:\n===actual===\n%+v\n===expected===\n%+v", actual, expected)
		}
	})

	t.Run("when the scope is not given, it should respond 400", func(t *testing.T) {
		mckReview := reviewmocks.NewReviewInterface()

		e := echo.New()
		c, _ := httptestutil.Get(e, "/api/review-queue/?tag=42")

		testee := handlers.ReviewQueueHandler(mckReview)
		assertStatusCode(t, testee(c), http.StatusBadRequest)
	})
}
