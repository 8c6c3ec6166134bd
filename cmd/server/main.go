package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/DiegxRG/E-Vote/docs"
	"github.com/DiegxRG/E-Vote/internal/config"
	"github.com/DiegxRG/E-Vote/internal/domain/ballot"
	"github.com/DiegxRG/E-Vote/internal/domain/candidate"
	"github.com/DiegxRG/E-Vote/internal/domain/election"
	"github.com/DiegxRG/E-Vote/internal/domain/tally"
	"github.com/DiegxRG/E-Vote/internal/domain/voter"
	api "github.com/DiegxRG/E-Vote/internal/http"
	"github.com/DiegxRG/E-Vote/internal/metrics"
	"github.com/DiegxRG/E-Vote/internal/platform/database"
	jwtpkg "github.com/DiegxRG/E-Vote/internal/platform/jwt"
	"github.com/DiegxRG/E-Vote/internal/repository/memory"
	"github.com/DiegxRG/E-Vote/internal/repository/postgres"
	"github.com/DiegxRG/E-Vote/internal/worker"
)

type candidateStore interface {
	candidate.Repository
	candidate.PartyRepository
	candidate.ProfileRepository
	tally.CandidateSource
	ballot.CandidateIndex
}

type voteStore interface {
	ballot.Repository
	tally.VoteSource
}

type electionStore interface {
	election.Repository
	election.OfficeRepository
}

type repositories struct {
	elections  electionStore
	candidates candidateStore
	voters     voter.Repository
	votes      voteStore
}

// @title           E-Vote API
// @version         1.0
// @description     Electoral portal: ballots, elections, candidates and tallies
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
func main() {
	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)
	api.SetLogger(logger)
	metrics.Register()

	var (
		db    *sql.DB
		repos repositories
	)
	switch cfg.StorageDriver {
	case "memory":
		m := memory.NewStore().Repos()
		repos = repositories{elections: m.Elections, candidates: m.Candidates, voters: m.Voters, votes: m.Votes}
		logger.Warn("using in-memory storage; data is lost on restart")
	default:
		var err error
		db, err = database.NewPostgres(cfg.DB_DSN)
		if err != nil {
			log.Fatalf("db connect error: %v", err)
		}
		defer db.Close()

		if cfg.AutoMigrate {
			migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			err := database.Migrate(migrateCtx, db)
			cancel()
			if err != nil {
				log.Fatalf("migrate error: %v", err)
			}
		}
		repos = repositories{
			elections:  postgres.NewElectionRepo(db),
			candidates: postgres.NewCandidateRepo(db),
			voters:     postgres.NewVoterRepo(db),
			votes:      postgres.NewVoteRepo(db),
		}
	}

	voterSvc := voter.NewService(repos.voters, voter.NewMemoryRegistry(cfg.RegistrySeed))
	electionSvc := election.NewService(repos.elections, repos.elections)
	candidateSvc := candidate.NewService(repos.candidates, repos.candidates, repos.candidates, electionSvc)
	ballotSvc := ballot.NewService(repos.votes, electionSvc, repos.candidates, voterSvc)
	tallySvc := tally.NewService(repos.elections, repos.candidates, repos.votes)

	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		bootstrapAdmin(logger, voterSvc, cfg.AdminEmail, cfg.AdminPassword)
	}

	ballotCh := make(chan worker.BallotEvent, 100)
	ballotWorker := worker.NewBallotWorker(ballotCh, logger)

	router := api.NewRouter(api.Deps{
		Voters:         voterSvc,
		Elections:      electionSvc,
		Candidates:     candidateSvc,
		Ballots:        ballotSvc,
		Tally:          tallySvc,
		JWT:            jwtpkg.NewManager(cfg.JWTSecret, cfg.JWTIssuer),
		TokenTTL:       cfg.TokenTTL,
		VotesPerMinute: cfg.VotesPerMinute,
		BallotEvents:   ballotCh,
		DB:             db,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go ballotWorker.Run(ctx)

	go func() {
		logger.Info("server listening", "port", cfg.Port, "storage", cfg.StorageDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "err", err)
	}
	cancel()

	logger.Info("server stopped")
}

// bootstrapAdmin registers email as an administrator unless the account already exists.
func bootstrapAdmin(logger *slog.Logger, svc *voter.Service, email, password string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	p, err := svc.Register(ctx, email, password)
	if errors.Is(err, voter.ErrEmailTaken) {
		logger.Info("admin account already present", "email", email)
		return
	}
	if err != nil {
		logger.Error("bootstrap admin", "err", err)
		return
	}
	if err := svc.UpdateRole(ctx, p.ID, voter.RoleAdmin); err != nil {
		logger.Error("bootstrap admin role", "err", err)
		return
	}
	logger.Info("admin account created", "email", email)
}
