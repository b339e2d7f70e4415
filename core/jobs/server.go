package jobs

import (
	"context"
	"encoding/json"
	"fmt"

	"campus-events-api/core/config"
	"campus-events-api/core/constants"
	"campus-events-api/core/logger"
	"campus-events-api/core/mailer"

	"github.com/hibiken/asynq"
)

// ExpiredEventCloser is implemented by the event service; the worker only
// needs the one sweep operation.
type ExpiredEventCloser interface {
	CloseExpiredEvents(ctx context.Context) (int, error)
}

// Server runs the asynq worker and its periodic scheduler.
type Server struct {
	srv       *asynq.Server
	scheduler *asynq.Scheduler
	mux       *asynq.ServeMux
}

const registrationConfirmedTemplate = `
<h2>You're in, {{.UserName}}!</h2>
<p>Your registration for <strong>{{.EventTitle}}</strong> is confirmed.</p>
<ul>
  <li>Date: {{.EventDate.Format "Mon, 02 Jan 2006"}} at {{.EventTime}}</li>
  <li>Venue: {{.EventVenue}}</li>
</ul>
<p>Your QR check-in code is available under "My Registrations".</p>
`

func NewServer(cfg config.RedisConfig, mail *mailer.Mailer, events ExpiredEventCloser) *Server {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}

	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 5,
		Queues: map[string]int{
			constants.QueueCritical: 6,
			constants.QueueDefault:  3,
		},
	})

	scheduler := asynq.NewScheduler(redisOpt, nil)

	mux := asynq.NewServeMux()

	mux.HandleFunc(constants.TaskEmailRegistrationConfirmed, func(ctx context.Context, t *asynq.Task) error {
		var payload RegistrationConfirmedPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("unmarshal %s payload: %w", t.Type(), err)
		}
		return mail.SendTemplate(
			payload.UserEmail,
			"Registration confirmed: "+payload.EventTitle,
			registrationConfirmedTemplate,
			payload,
		)
	})

	mux.HandleFunc(constants.TaskEventsCloseExpired, func(ctx context.Context, t *asynq.Task) error {
		closed, err := events.CloseExpiredEvents(ctx)
		if err != nil {
			return err
		}
		if closed > 0 {
			logger.Info("Jobs:CloseExpiredEvents swept", "closed", closed)
		}
		return nil
	})

	return &Server{srv: srv, scheduler: scheduler, mux: mux}
}

// Start launches the worker and registers the hourly expired-event sweep.
func (s *Server) Start() error {
	if _, err := s.scheduler.Register("@every 1h", NewCloseExpiredEventsTask()); err != nil {
		return fmt.Errorf("register scheduler task: %w", err)
	}
	if err := s.scheduler.Start(); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	if err := s.srv.Start(s.mux); err != nil {
		return fmt.Errorf("start worker: %w", err)
	}
	return nil
}

func (s *Server) Shutdown() {
	s.scheduler.Shutdown()
	s.srv.Shutdown()
}
