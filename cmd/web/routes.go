package main

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/foreveruup/fifa-bot/internal/httputil"
	"github.com/foreveruup/fifa-bot/internal/league"
	"github.com/foreveruup/fifa-bot/internal/middleware"
	"github.com/foreveruup/fifa-bot/internal/service"
	"github.com/foreveruup/fifa-bot/internal/store"
	"github.com/foreveruup/fifa-bot/internal/wizard"
)

func newRouter(dbConn *sqlx.DB, sessions *wizard.SessionStore, adminToken string, legacySingle bool) http.Handler {
	tournamentStore := store.NewTournamentStore(dbConn)
	tournaments := service.NewTournamentService(dbConn, tournamentStore, legacySingle)
	schedule := service.NewScheduleService(dbConn, tournamentStore)
	standings := service.NewStandingsService(tournamentStore)
	matches := service.NewMatchService(dbConn, tournamentStore)
	engine := wizard.NewEngine(sessions, tournaments, schedule, standings, matches)

	r := chi.NewRouter()

	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequireIdentity(adminToken))

	identityOf := func(r *http.Request) middleware.Identity {
		identity, _ := middleware.IdentityFromContext(r.Context())
		return identity
	}

	r.Post("/tournaments", func(w http.ResponseWriter, r *http.Request) {
		identity := identityOf(r)
		if !identity.Admin {
			httputil.Forbidden(w, "only admins can create tournaments")
			return
		}
		if err := r.ParseForm(); err != nil {
			httputil.BadRequest(w, "Invalid form data", err)
			return
		}

		rounds := league.DefaultRounds
		if roundsStr := strings.TrimSpace(r.Form.Get("rounds")); roundsStr != "" {
			n, err := strconv.Atoi(roundsStr)
			if err != nil {
				httputil.BadRequest(w, "Invalid round count", err)
				return
			}
			rounds = n
		}

		tournament, err := tournaments.Create(r.Context(), identity.ChannelID, r.Form.Get("name"), rounds, r.Form.Get("prize"))
		if err != nil {
			httputil.ServiceError(w, "Failed to create tournament", err)
			return
		}
		httputil.WriteJSON(w, http.StatusCreated, tournament)
	})

	r.Get("/tournaments", func(w http.ResponseWriter, r *http.Request) {
		identity := identityOf(r)
		list, err := tournaments.ListForChannel(r.Context(), identity.ChannelID)
		if err != nil {
			httputil.InternalServerError(w, "Failed to list tournaments", err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, list)
	})

	r.Post("/tournaments/select", func(w http.ResponseWriter, r *http.Request) {
		identity := identityOf(r)
		if err := r.ParseForm(); err != nil {
			httputil.BadRequest(w, "Invalid form data", err)
			return
		}
		tournamentID, err := uuid.Parse(r.Form.Get("tournament_id"))
		if err != nil {
			httputil.BadRequest(w, "Invalid tournament ID", err)
			return
		}
		tournament, err := tournaments.Select(r.Context(), identity.ChannelID, tournamentID)
		if err != nil {
			httputil.ServiceError(w, "Failed to select tournament", err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, tournament)
	})

	r.Get("/tournaments/active", func(w http.ResponseWriter, r *http.Request) {
		identity := identityOf(r)
		tournament, err := tournaments.Active(r.Context(), identity.ChannelID)
		if err != nil {
			httputil.ServiceError(w, "Failed to get active tournament", err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, tournament)
	})

	r.Post("/tournaments/active/end", func(w http.ResponseWriter, r *http.Request) {
		identity := identityOf(r)
		if !identity.Admin {
			httputil.Forbidden(w, "only admins can finish tournaments")
			return
		}
		active, err := tournaments.Active(r.Context(), identity.ChannelID)
		if err != nil {
			httputil.ServiceError(w, "Failed to get active tournament", err)
			return
		}
		ended, err := tournaments.End(r.Context(), active.ID)
		if err != nil {
			httputil.ServiceError(w, "Failed to finish tournament", err)
			return
		}
		table, err := standings.Table(r.Context(), ended.ID)
		if err != nil {
			httputil.ServiceError(w, "Failed to compute final standings", err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"tournament": ended,
			"table":      table,
		})
	})

	r.Post("/participants", func(w http.ResponseWriter, r *http.Request) {
		identity := identityOf(r)
		if !identity.Admin {
			httputil.Forbidden(w, "only admins can add participants")
			return
		}
		if err := r.ParseForm(); err != nil {
			httputil.BadRequest(w, "Invalid form data", err)
			return
		}
		active, err := tournaments.Active(r.Context(), identity.ChannelID)
		if err != nil {
			httputil.ServiceError(w, "Failed to get active tournament", err)
			return
		}
		participant, err := tournaments.AddParticipant(r.Context(), active.ID, r.Form.Get("name"))
		if err != nil {
			httputil.ServiceError(w, "Failed to add participant", err)
			return
		}
		httputil.WriteJSON(w, http.StatusCreated, participant)
	})

	r.Post("/participants/batch", func(w http.ResponseWriter, r *http.Request) {
		identity := identityOf(r)
		if !identity.Admin {
			httputil.Forbidden(w, "only admins can add participants")
			return
		}
		if err := r.ParseForm(); err != nil {
			httputil.BadRequest(w, "Invalid form data", err)
			return
		}
		active, err := tournaments.Active(r.Context(), identity.ChannelID)
		if err != nil {
			httputil.ServiceError(w, "Failed to get active tournament", err)
			return
		}
		added, skipped, err := tournaments.AddParticipants(r.Context(), active.ID, strings.Split(r.Form.Get("names"), "\n"))
		if err != nil {
			httputil.ServiceError(w, "Failed to add participants", err)
			return
		}
		httputil.WriteJSON(w, http.StatusCreated, map[string]any{
			"added":   added,
			"skipped": skipped,
		})
	})

	r.Get("/participants", func(w http.ResponseWriter, r *http.Request) {
		identity := identityOf(r)
		active, err := tournaments.Active(r.Context(), identity.ChannelID)
		if err != nil {
			httputil.ServiceError(w, "Failed to get active tournament", err)
			return
		}
		participants, err := tournaments.Participants(r.Context(), active.ID)
		if err != nil {
			httputil.InternalServerError(w, "Failed to list participants", err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, participants)
	})

	r.Post("/participants/{id}/club", func(w http.ResponseWriter, r *http.Request) {
		participantID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			httputil.BadRequest(w, "Invalid participant ID", err)
			return
		}
		if err := r.ParseForm(); err != nil {
			httputil.BadRequest(w, "Invalid form data", err)
			return
		}
		participant, err := tournaments.AssignClub(r.Context(), participantID, r.Form.Get("club"))
		if err != nil {
			httputil.ServiceError(w, "Failed to assign club", err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, participant)
	})

	r.Post("/clubs/random", func(w http.ResponseWriter, r *http.Request) {
		identity := identityOf(r)
		if !identity.Admin {
			httputil.Forbidden(w, "only admins can hand out random clubs")
			return
		}
		active, err := tournaments.Active(r.Context(), identity.ChannelID)
		if err != nil {
			httputil.ServiceError(w, "Failed to get active tournament", err)
			return
		}
		count, err := tournaments.AssignRandomClubs(r.Context(), active.ID)
		if err != nil {
			httputil.ServiceError(w, "Failed to assign random clubs", err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]int{"assigned": count})
	})

	r.Post("/schedule", func(w http.ResponseWriter, r *http.Request) {
		identity := identityOf(r)
		if !identity.Admin {
			httputil.Forbidden(w, "only admins can generate the schedule")
			return
		}
		if err := r.ParseForm(); err != nil {
			httputil.BadRequest(w, "Invalid form data", err)
			return
		}
		active, err := tournaments.Active(r.Context(), identity.ChannelID)
		if err != nil {
			httputil.ServiceError(w, "Failed to get active tournament", err)
			return
		}

		// Regeneration wipes recorded results, so it has to be asked
		// for explicitly.
		if r.Form.Get("confirm") != "true" {
			exists, err := schedule.HasMatches(r.Context(), active.ID)
			if err != nil {
				httputil.InternalServerError(w, "Failed to check schedule", err)
				return
			}
			if exists {
				httputil.ServiceError(w, "", service.ErrScheduleExists)
				return
			}
		}

		generated, err := schedule.Generate(r.Context(), active.ID)
		if err != nil {
			httputil.ServiceError(w, "Failed to generate schedule", err)
			return
		}
		httputil.WriteJSON(w, http.StatusCreated, generated)
	})

	r.Get("/schedule", func(w http.ResponseWriter, r *http.Request) {
		identity := identityOf(r)
		active, err := tournaments.Active(r.Context(), identity.ChannelID)
		if err != nil {
			httputil.ServiceError(w, "Failed to get active tournament", err)
			return
		}
		list, err := matches.Schedule(r.Context(), active.ID)
		if err != nil {
			httputil.InternalServerError(w, "Failed to get schedule", err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, list)
	})

	r.Get("/standings", func(w http.ResponseWriter, r *http.Request) {
		identity := identityOf(r)
		active, err := tournaments.Active(r.Context(), identity.ChannelID)
		if err != nil {
			httputil.ServiceError(w, "Failed to get active tournament", err)
			return
		}
		table, err := standings.Table(r.Context(), active.ID)
		if err != nil {
			httputil.ServiceError(w, "Failed to compute standings", err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"tournament": active,
			"table":      table,
		})
	})

	r.Post("/results", func(w http.ResponseWriter, r *http.Request) {
		identity := identityOf(r)
		if err := r.ParseForm(); err != nil {
			httputil.BadRequest(w, "Invalid form data", err)
			return
		}
		homeGoals, err := strconv.Atoi(r.Form.Get("home_goals"))
		if err != nil {
			httputil.BadRequest(w, "Invalid home goals", err)
			return
		}
		awayGoals, err := strconv.Atoi(r.Form.Get("away_goals"))
		if err != nil {
			httputil.BadRequest(w, "Invalid away goals", err)
			return
		}
		correction := r.Form.Get("correct") == "true"

		active, err := tournaments.Active(r.Context(), identity.ChannelID)
		if err != nil {
			httputil.ServiceError(w, "Failed to get active tournament", err)
			return
		}
		result, err := matches.RecordResultByRef(r.Context(), active.ID, r.Form.Get("match"), homeGoals, awayGoals, correction)
		if err != nil {
			httputil.ServiceError(w, "Failed to record result", err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, result)
	})

	r.Post("/actions", func(w http.ResponseWriter, r *http.Request) {
		identity := identityOf(r)
		if err := r.ParseForm(); err != nil {
			httputil.BadRequest(w, "Invalid form data", err)
			return
		}
		goals := 0
		if goalsStr := r.Form.Get("goals"); goalsStr != "" {
			n, err := strconv.Atoi(goalsStr)
			if err != nil || n < 0 {
				httputil.BadRequest(w, "Invalid goal count", err)
				return
			}
			goals = n
		}

		outcome, err := engine.HandleRaw(r.Context(), wizard.Ctx{
			ChannelID: identity.ChannelID,
			UserID:    identity.UserID,
			Admin:     identity.Admin,
		}, r.Form.Get("action"), r.Form.Get("value"), goals)
		if err != nil {
			httputil.InternalServerError(w, "Failed to handle action", err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, outcome)
	})

	return r
}
