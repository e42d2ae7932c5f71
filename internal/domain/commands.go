package domain

import (
	"context"
	"errors"
	"time"

	"go-confcore/internal/authz"
)

// CreateOrganizer inserts an organizer person. The secret gating this
// operation was already validated by the codec at decode time; no role
// check applies to the caller because there is no caller yet to check.
func (s *Store) CreateOrganizer(ctx context.Context, newLogin, newPassword string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO persons (login, password, is_organizer) VALUES ($1, $2, true)`,
		newLogin, newPassword)
	if err != nil {
		if isUniqueViolation(err) {
			return newValidation("create_organizer", "newlogin", newLogin, errors.New("login already taken"))
		}
		return newStore("create_organizer", err)
	}
	return nil
}

// CreateUser inserts a non-organizer person. Caller must be an organizer.
func (s *Store) CreateUser(ctx context.Context, login, password, newLogin, newPassword string) error {
	if _, err := authorize(ctx, s.pool, login, &password, authz.Organizer); err != nil {
		return err
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO persons (login, password, is_organizer) VALUES ($1, $2, false)`,
		newLogin, newPassword)
	if err != nil {
		if isUniqueViolation(err) {
			return newValidation("create_user", "newlogin", newLogin, errors.New("login already taken"))
		}
		return newStore("create_user", err)
	}
	return nil
}

// CreateEvent inserts an event with a unique name. Caller must be an
// organizer. end must be >= start.
func (s *Store) CreateEvent(ctx context.Context, login, password, eventName string, start, end time.Time) error {
	if _, err := authorize(ctx, s.pool, login, &password, authz.Organizer); err != nil {
		return err
	}
	if end.Before(start) {
		return newValidation("create_event", "end_timestamp", end.String(), errors.New("end must be >= start"))
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO events (eventname, start_timestamp, end_timestamp) VALUES ($1, $2, $3)`,
		eventName, start, end)
	if err != nil {
		if isUniqueViolation(err) {
			return newValidation("create_event", "eventname", eventName, errors.New("eventname already taken"))
		}
		return newStore("create_event", err)
	}
	return nil
}

// RegisterOrAcceptTalkParams bundles the talk upsert's many fields.
type RegisterOrAcceptTalkParams struct {
	Login             string
	Password          string
	SpeakerLogin      string
	Talk              string
	Title             string
	StartTimestamp    time.Time
	Room              string
	InitialEvaluation int64
	EventName         string
}

// RegisterOrAcceptTalk upserts the talk keyed by its external tag to
// Accepted, records the organizer's initial evaluation as a rating, and
// attributes the talk to an event when one is named and its interval
// contains the talk's start.
func (s *Store) RegisterOrAcceptTalk(ctx context.Context, p RegisterOrAcceptTalkParams) error {
	organizerID, err := authorize(ctx, s.pool, p.Login, &p.Password, authz.Organizer)
	if err != nil {
		return err
	}
	// Speaker may be any person, including the organizer themself.
	speakerID, err := personIDByLogin(ctx, s.pool, p.SpeakerLogin)
	if err != nil {
		return err
	}
	if p.InitialEvaluation < 0 || p.InitialEvaluation > 10 {
		return newValidation("talk", "initial_evaluation", "out of range", errors.New("must be 0-10"))
	}

	var eventID *int64
	if p.EventName != "" {
		id, start, end, err := eventByName(ctx, s.pool, "talk", p.EventName)
		if err != nil {
			return err
		}
		if p.StartTimestamp.Before(start) || p.StartTimestamp.After(end) {
			return newValidation("talk", "start_timestamp", p.StartTimestamp.String(),
				errors.New("does not fall within event interval"))
		}
		eventID = &id
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return newStore("talk", err)
	}
	defer tx.Rollback(ctx)

	var room *string
	if p.Room != "" {
		room = &p.Room
	}

	var talkID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO talks (talk, speaker_id, status, title, start_timestamp, room, event_id, modified_at)
		VALUES ($1, $2, 'Accepted', $3, $4, $5, $6, now())
		ON CONFLICT (talk) DO UPDATE SET
			speaker_id = EXCLUDED.speaker_id,
			status = 'Accepted',
			title = EXCLUDED.title,
			start_timestamp = EXCLUDED.start_timestamp,
			room = EXCLUDED.room,
			event_id = EXCLUDED.event_id,
			modified_at = now()
		RETURNING id`,
		p.Talk, speakerID, p.Title, p.StartTimestamp, room, eventID).Scan(&talkID)
	if err != nil {
		return newStore("talk", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO person_rated_talk (person_id, talk_id, rating) VALUES ($1, $2, $3)`,
		organizerID, talkID, p.InitialEvaluation)
	if err != nil {
		return newStore("talk", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return newStore("talk", err)
	}
	return nil
}

// RegisterUserForEvent registers a non-organizer person for an event.
func (s *Store) RegisterUserForEvent(ctx context.Context, login, password, eventName string) error {
	personID, err := authorize(ctx, s.pool, login, &password, authz.User)
	if err != nil {
		return err
	}
	eventID, _, _, err := eventByName(ctx, s.pool, "register_user_for_event", eventName)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO person_registered_for_event (person_id, event_id) VALUES ($1, $2)`,
		personID, eventID)
	if err != nil {
		if isUniqueViolation(err) {
			return newValidation("register_user_for_event", "eventname", eventName, errors.New("already registered"))
		}
		return newStore("register_user_for_event", err)
	}
	return nil
}

// Attendance records that a person attended an Accepted talk.
func (s *Store) Attendance(ctx context.Context, login, password, talk string) error {
	personID, err := authorize(ctx, s.pool, login, &password, authz.User)
	if err != nil {
		return err
	}
	talkID, status, err := talkByTag(ctx, s.pool, "attendance", talk)
	if err != nil {
		return err
	}
	if status != StatusAccepted {
		return newValidation("attendance", "talk", talk, errors.New("talk is not Accepted"))
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO person_attended_for_talk (person_id, talk_id) VALUES ($1, $2)`,
		personID, talkID)
	if err != nil {
		if isUniqueViolation(err) {
			return newValidation("attendance", "talk", talk, errors.New("already attended"))
		}
		return newStore("attendance", err)
	}
	return nil
}

// Evaluation records a rating for an Accepted talk. A person may rate the
// same talk more than once.
func (s *Store) Evaluation(ctx context.Context, login, password, talk string, rating int64) error {
	personID, err := authorize(ctx, s.pool, login, &password, authz.User)
	if err != nil {
		return err
	}
	if rating < 0 || rating > 10 {
		return newValidation("evaluation", "rating", "out of range", errors.New("must be 0-10"))
	}
	talkID, status, err := talkByTag(ctx, s.pool, "evaluation", talk)
	if err != nil {
		return err
	}
	if status != StatusAccepted {
		return newValidation("evaluation", "talk", talk, errors.New("talk is not Accepted"))
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO person_rated_talk (person_id, talk_id, rating) VALUES ($1, $2, $3)`,
		personID, talkID, rating)
	if err != nil {
		return newStore("evaluation", err)
	}
	return nil
}

// Reject transitions a Proposed talk to Rejected. Any other current state,
// including non-existence, is an error; rejection is not idempotent.
func (s *Store) Reject(ctx context.Context, login, password, talk string) error {
	if _, err := authorize(ctx, s.pool, login, &password, authz.Organizer); err != nil {
		return err
	}
	_, status, err := talkByTag(ctx, s.pool, "reject", talk)
	if err != nil {
		return err
	}
	if status != StatusProposed {
		return newValidation("reject", "talk", talk, errors.New("talk is not Proposed"))
	}
	_, err = s.pool.Exec(ctx, `UPDATE talks SET status = 'Rejected' WHERE talk = $1`, talk)
	if err != nil {
		return newStore("reject", err)
	}
	return nil
}

// Proposal inserts a new spontaneous talk in Proposed state, with no room
// and no event.
func (s *Store) Proposal(ctx context.Context, login, password, talk, title string, start time.Time) error {
	speakerID, err := authorize(ctx, s.pool, login, &password, authz.User)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO talks (talk, speaker_id, status, title, start_timestamp, room, event_id, modified_at)
		VALUES ($1, $2, 'Proposed', $3, $4, NULL, NULL, now())`,
		talk, speakerID, title, start)
	if err != nil {
		if isUniqueViolation(err) {
			return newValidation("proposal", "talk", talk, errors.New("talk tag already taken"))
		}
		return newStore("proposal", err)
	}
	return nil
}

// Friends records a one-directional friend intent from login1 to login2.
// Mutual friendship is derived in queries from the pair of directed
// intents.
func (s *Store) Friends(ctx context.Context, login1, password, login2 string) error {
	id1, err := authorize(ctx, s.pool, login1, &password, authz.User)
	if err != nil {
		return err
	}
	id2, err := authorize(ctx, s.pool, login2, nil, authz.User)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO person_knows_person (person1_id, person2_id) VALUES ($1, $2)`,
		id1, id2)
	if err != nil {
		if isUniqueViolation(err) {
			return newValidation("friends", "login2", login2, errors.New("intent already recorded"))
		}
		return newStore("friends", err)
	}
	return nil
}
