package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	apierr "github.com/uw-gac/phenotag/pkg/api/types/errors"
	apitagging "github.com/uw-gac/phenotag/pkg/api/types/tagging"
	"github.com/uw-gac/phenotag/pkg/domain"
	taggingdb "github.com/uw-gac/phenotag/pkg/domain/tagging/db"
	traitsdb "github.com/uw-gac/phenotag/pkg/domain/traits/db"
	"github.com/uw-gac/phenotag/pkg/utils/pointer"
)

// TagVariableHandler associates one variable, named by accession, with
// a tag.
func TagVariableHandler(
	dbTraits traitsdb.Interface, dbTagging taggingdb.Interface,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		actor, ok := ActorOf(c)
		if !ok {
			return apierr.Unauthorized("no actor", nil)
		}

		req := apitagging.TagRequest{}
		if err := decodeBody(c, &req); err != nil {
			return err
		}

		variable, err := dbTraits.LookupAccession(ctx, req.Variable)
		if err != nil {
			return translate(err)
		}

		created, err := dbTagging.Create(ctx, variable.Id, req.Tag, actor)
		if err != nil {
			return translate(err)
		}

		return c.JSON(http.StatusCreated, apitagging.ComposeSummary(created))
	}
}

// BulkTagHandler applies one tag to many variables in one transaction.
// One unresolvable accession or one conflicting pair fails the whole batch.
func BulkTagHandler(
	dbTraits traitsdb.Interface, dbTagging taggingdb.Interface,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		actor, ok := ActorOf(c)
		if !ok {
			return apierr.Unauthorized("no actor", nil)
		}

		req := apitagging.BulkTagRequest{}
		if err := decodeBody(c, &req); err != nil {
			return err
		}
		if len(req.Variables) == 0 {
			return apierr.BadRequest("no variables given", nil)
		}

		variableIds := make([]int64, len(req.Variables))
		for i, accession := range req.Variables {
			v, err := dbTraits.LookupAccession(ctx, accession)
			if err != nil {
				return translate(err)
			}
			variableIds[i] = v.Id
		}

		created, err := dbTagging.BulkCreate(ctx, variableIds, req.Tag, actor)
		if err != nil {
			return translate(err)
		}

		summaries := make([]apitagging.Summary, len(created))
		for i, tv := range created {
			summaries[i] = apitagging.ComposeSummary(tv)
		}
		return c.JSON(http.StatusCreated, summaries)
	}
}

// DeleteTaggedVariableHandler removes a not-yet-reviewed association the
// actor made by mistake.
func DeleteTaggedVariableHandler(dbTagging taggingdb.Interface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		actor, ok := ActorOf(c)
		if !ok {
			return apierr.Unauthorized("no actor", nil)
		}

		id, err := pathId(c, "taggedVariableId")
		if err != nil {
			return err
		}

		if err := dbTagging.DeleteOwn(ctx, id, actor); err != nil {
			return translate(err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

// FindTaggedVariablesHandler lists tagged variables with their review
// records, filtered by tag, study and archived flags.
func FindTaggedVariablesHandler(dbTagging taggingdb.Interface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		query := domain.TaggedVariableQuery{}
		if p := c.QueryParam("tag"); p != "" {
			tagId, err := strconv.ParseInt(p, 10, 64)
			if err != nil {
				return apierr.BadRequest(`query parameter "tag" should be an id`, err)
			}
			query.TagId = pointer.Ref(tagId)
		}
		if p := c.QueryParam("study"); p != "" {
			studyId, err := strconv.ParseInt(p, 10, 64)
			if err != nil {
				return apierr.BadRequest(`query parameter "study" should be an id`, err)
			}
			query.StudyId = pointer.Ref(studyId)
		}
		if p := c.QueryParam("archived"); p != "" {
			archived, err := strconv.ParseBool(p)
			if err != nil {
				return apierr.BadRequest(`query parameter "archived" should be a boolean`, err)
			}
			query.Archived = pointer.Ref(archived)
		}

		ids, err := dbTagging.Find(ctx, query)
		if err != nil {
			return translate(err)
		}
		if len(ids) == 0 {
			return c.JSON(http.StatusOK, []apitagging.Detail{})
		}

		states, err := dbTagging.Get(ctx, ids)
		if err != nil {
			return translate(err)
		}

		found := make([]apitagging.Detail, 0, len(states))
		for _, id := range ids {
			if s, ok := states[id]; ok {
				found = append(found, apitagging.ComposeDetail(s))
			}
		}
		return c.JSON(http.StatusOK, found)
	}
}

// GetTaggedVariableHandler retrieves one tagged variable with its review
// records and derived resolution.
func GetTaggedVariableHandler(dbTagging taggingdb.Interface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		id, herr := pathId(c, "taggedVariableId")
		if herr != nil {
			return herr
		}

		states, err := dbTagging.Get(ctx, []int64{id})
		if err != nil {
			return translate(err)
		}
		s, ok := states[id]
		if !ok {
			return apierr.NotFound()
		}
		return c.JSON(http.StatusOK, apitagging.ComposeDetail(s))
	}
}

func pathId(c echo.Context, param string) (int64, *echo.HTTPError) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil {
		return 0, apierr.BadRequest("path parameter should be an id", err)
	}
	return id, nil
}

func decodeBody(c echo.Context, into any) *echo.HTTPError {
	decoder := json.NewDecoder(c.Request().Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(into); err != nil {
		return apierr.NewErrorMessage(
			http.StatusBadRequest,
			"format error",
			apierr.WithAdvice(err.Error()),
			apierr.WithError(err),
		)
	}
	return nil
}
