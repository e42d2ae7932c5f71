package domain

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"go-confcore/internal/authz"
	"go-confcore/internal/codec"
)

// UserPlan returns the speaker's Accepted talks, starting now or later,
// inside events the given person is registered for.
func (s *Store) UserPlan(ctx context.Context, login string, limit int64) ([]codec.UserPlanRow, error) {
	personID, err := personIDByLogin(ctx, s.pool, login)
	if err != nil {
		return nil, err
	}
	rows, err := s.pool.Query(ctx, `
		SELECT sp.login, t.talk, t.start_timestamp, t.title, COALESCE(t.room, '')
		FROM talks t
		JOIN person_registered_for_event pre ON pre.event_id = t.event_id
		JOIN persons sp ON sp.id = t.speaker_id
		WHERE pre.person_id = $1
		  AND t.status = 'Accepted'
		  AND t.start_timestamp >= now()
		ORDER BY t.start_timestamp ASC
		LIMIT NULLIF($2, 0)`,
		personID, limit)
	if err != nil {
		return nil, newStore("user_plan", err)
	}
	defer rows.Close()

	out := []codec.UserPlanRow{}
	for rows.Next() {
		var r codec.UserPlanRow
		var ts time.Time
		if err := rows.Scan(&r.Login, &r.Talk, &ts, &r.Title, &r.Room); err != nil {
			return nil, newStore("user_plan", err)
		}
		r.StartTimestamp = codec.OutTimestamp(ts)
		out = append(out, r)
	}
	return out, rows.Err()
}

// DayPlan returns every Accepted talk on the given date, ordered by room
// then start time.
func (s *Store) DayPlan(ctx context.Context, date time.Time) ([]codec.TalkRow, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT talk, start_timestamp, title, COALESCE(room, '')
		FROM talks
		WHERE status = 'Accepted' AND start_timestamp::date = $1::date
		ORDER BY room ASC, start_timestamp ASC`,
		date)
	if err != nil {
		return nil, newStore("day_plan", err)
	}
	return scanTalkRows(rows, "day_plan")
}

// BestTalks returns Accepted talks in the window ordered by average
// rating descending. When all is false, only ratings from organizers or
// attendees count.
func (s *Store) BestTalks(ctx context.Context, start, end time.Time, limit int64, all bool) ([]codec.TalkRow, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT t.talk, t.start_timestamp, t.title, COALESCE(t.room, '')
		FROM talks t
		JOIN person_rated_talk r ON r.talk_id = t.id
		JOIN persons rater ON rater.id = r.person_id
		WHERE t.status = 'Accepted'
		  AND t.start_timestamp BETWEEN $1 AND $2
		  AND ($4
		       OR rater.is_organizer
		       OR EXISTS (SELECT 1 FROM person_attended_for_talk pa
		                  WHERE pa.talk_id = t.id AND pa.person_id = r.person_id))
		GROUP BY t.id
		ORDER BY AVG(r.rating) DESC
		LIMIT NULLIF($3, 0)`,
		start, end, limit, all)
	if err != nil {
		return nil, newStore("best_talks", err)
	}
	return scanTalkRows(rows, "best_talks")
}

// MostPopularTalks returns Accepted talks in the window ordered by
// attendance count descending.
func (s *Store) MostPopularTalks(ctx context.Context, start, end time.Time, limit int64) ([]codec.TalkRow, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT t.talk, t.start_timestamp, t.title, COALESCE(t.room, '')
		FROM talks t
		LEFT JOIN person_attended_for_talk pa ON pa.talk_id = t.id
		WHERE t.status = 'Accepted' AND t.start_timestamp BETWEEN $1 AND $2
		GROUP BY t.id
		ORDER BY COUNT(pa.person_id) DESC
		LIMIT NULLIF($3, 0)`,
		start, end, limit)
	if err != nil {
		return nil, newStore("most_popular_talks", err)
	}
	return scanTalkRows(rows, "most_popular_talks")
}

// AttendedTalks returns every talk the given person attended.
func (s *Store) AttendedTalks(ctx context.Context, login, password string) ([]codec.TalkRow, error) {
	personID, err := authorize(ctx, s.pool, login, &password, authz.User)
	if err != nil {
		return nil, err
	}
	rows, err := s.pool.Query(ctx, `
		SELECT t.talk, t.start_timestamp, t.title, COALESCE(t.room, '')
		FROM talks t
		JOIN person_attended_for_talk pa ON pa.talk_id = t.id
		WHERE pa.person_id = $1
		ORDER BY t.start_timestamp ASC`,
		personID)
	if err != nil {
		return nil, newStore("attended_talks", err)
	}
	return scanTalkRows(rows, "attended_talks")
}

// AbandonedTalks returns talks ordered by the number of event-registered
// persons who did not attend, descending.
func (s *Store) AbandonedTalks(ctx context.Context, login, password string, limit int64) ([]codec.AbandonedTalksRow, error) {
	if _, err := authorize(ctx, s.pool, login, &password, authz.Organizer); err != nil {
		return nil, err
	}
	rows, err := s.pool.Query(ctx, `
		SELECT t.talk, t.start_timestamp, t.title, COALESCE(t.room, ''),
		       COUNT(DISTINCT pre.person_id) FILTER (WHERE pa.person_id IS NULL) AS number
		FROM talks t
		JOIN person_registered_for_event pre ON pre.event_id = t.event_id
		LEFT JOIN person_attended_for_talk pa ON pa.talk_id = t.id AND pa.person_id = pre.person_id
		WHERE t.status = 'Accepted' AND t.event_id IS NOT NULL
		GROUP BY t.id
		ORDER BY number DESC
		LIMIT NULLIF($1, 0)`,
		limit)
	if err != nil {
		return nil, newStore("abandoned_talks", err)
	}
	defer rows.Close()

	out := []codec.AbandonedTalksRow{}
	for rows.Next() {
		var r codec.AbandonedTalksRow
		var ts time.Time
		if err := rows.Scan(&r.Talk, &ts, &r.Title, &r.Room, &r.Number); err != nil {
			return nil, newStore("abandoned_talks", err)
		}
		r.StartTimestamp = codec.OutTimestamp(ts)
		out = append(out, r)
	}
	return out, rows.Err()
}

// RecentlyAddedTalks returns Accepted talks ordered by modified_at
// descending.
func (s *Store) RecentlyAddedTalks(ctx context.Context, limit int64) ([]codec.RecentlyAddedTalksRow, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT t.talk, sp.login, t.start_timestamp, t.title, COALESCE(t.room, '')
		FROM talks t
		JOIN persons sp ON sp.id = t.speaker_id
		WHERE t.status = 'Accepted'
		ORDER BY t.modified_at DESC
		LIMIT NULLIF($1, 0)`,
		limit)
	if err != nil {
		return nil, newStore("recently_added_talks", err)
	}
	defer rows.Close()

	out := []codec.RecentlyAddedTalksRow{}
	for rows.Next() {
		var r codec.RecentlyAddedTalksRow
		var ts time.Time
		if err := rows.Scan(&r.Talk, &r.SpeakerLogin, &ts, &r.Title, &r.Room); err != nil {
			return nil, newStore("recently_added_talks", err)
		}
		r.StartTimestamp = codec.OutTimestamp(ts)
		out = append(out, r)
	}
	return out, rows.Err()
}

// RejectedTalks returns every Rejected talk for an organizer caller, or
// only the caller's own Rejected talks for a regular user: try Organizer
// first, then fall back to User; only a caller that satisfies neither
// fails.
func (s *Store) RejectedTalks(ctx context.Context, login, password string) ([]codec.SpeakerTalkRow, error) {
	var speakerFilter *int64
	if _, err := authorize(ctx, s.pool, login, &password, authz.Organizer); err != nil {
		id, err := authorize(ctx, s.pool, login, &password, authz.User)
		if err != nil {
			return nil, err
		}
		speakerFilter = &id
	}

	rows, err := s.pool.Query(ctx, `
		SELECT t.talk, sp.login, t.start_timestamp, t.title
		FROM talks t
		JOIN persons sp ON sp.id = t.speaker_id
		WHERE t.status = 'Rejected'
		  AND ($1::bigint IS NULL OR t.speaker_id = $1)
		ORDER BY t.start_timestamp ASC`,
		speakerFilter)
	if err != nil {
		return nil, newStore("rejected_talks", err)
	}
	return scanSpeakerTalkRows(rows, "rejected_talks")
}

// Proposals returns every talk in Proposed state. Caller must be an
// organizer.
func (s *Store) Proposals(ctx context.Context, login, password string) ([]codec.SpeakerTalkRow, error) {
	if _, err := authorize(ctx, s.pool, login, &password, authz.Organizer); err != nil {
		return nil, err
	}
	rows, err := s.pool.Query(ctx, `
		SELECT t.talk, sp.login, t.start_timestamp, t.title
		FROM talks t
		JOIN persons sp ON sp.id = t.speaker_id
		WHERE t.status = 'Proposed'
		ORDER BY t.start_timestamp ASC`)
	if err != nil {
		return nil, newStore("proposals", err)
	}
	return scanSpeakerTalkRows(rows, "proposals")
}

// FriendsTalks returns Accepted talks in the window given by speakers who
// are mutual friends of the caller.
func (s *Store) FriendsTalks(ctx context.Context, login, password string, start, end time.Time, limit int64) ([]codec.FriendsTalksRow, error) {
	callerID, err := authorize(ctx, s.pool, login, &password, authz.User)
	if err != nil {
		return nil, err
	}
	rows, err := s.pool.Query(ctx, `
		SELECT t.talk, sp.login, t.start_timestamp, t.title, COALESCE(t.room, '')
		FROM talks t
		JOIN persons sp ON sp.id = t.speaker_id
		WHERE t.status = 'Accepted'
		  AND t.start_timestamp BETWEEN $1 AND $2
		  AND EXISTS (SELECT 1 FROM person_knows_person a
		              WHERE a.person1_id = $3 AND a.person2_id = t.speaker_id)
		  AND EXISTS (SELECT 1 FROM person_knows_person b
		              WHERE b.person1_id = t.speaker_id AND b.person2_id = $3)
		ORDER BY t.start_timestamp ASC
		LIMIT NULLIF($4, 0)`,
		start, end, callerID, limit)
	if err != nil {
		return nil, newStore("friends_talks", err)
	}
	defer rows.Close()

	out := []codec.FriendsTalksRow{}
	for rows.Next() {
		var r codec.FriendsTalksRow
		var ts time.Time
		if err := rows.Scan(&r.Talk, &r.SpeakerLogin, &ts, &r.Title, &r.Room); err != nil {
			return nil, newStore("friends_talks", err)
		}
		r.StartTimestamp = codec.OutTimestamp(ts)
		out = append(out, r)
	}
	return out, rows.Err()
}

// FriendsEvents returns the caller's mutual friends together with the
// events they are registered for. eventName is accepted on the wire for
// compatibility but is not a row filter; each row carries the friend's
// actual registered event name rather than echoing the request parameter.
func (s *Store) FriendsEvents(ctx context.Context, login, password, eventName string) ([]codec.FriendsEventsRow, error) {
	_ = eventName
	callerID, err := authorize(ctx, s.pool, login, &password, authz.User)
	if err != nil {
		return nil, err
	}
	rows, err := s.pool.Query(ctx, `
		SELECT $1::text AS login, e.eventname, fp.login AS friendlogin
		FROM person_knows_person a
		JOIN person_knows_person b ON b.person1_id = a.person2_id AND b.person2_id = a.person1_id
		JOIN persons fp ON fp.id = a.person2_id
		JOIN person_registered_for_event pre ON pre.person_id = fp.id
		JOIN events e ON e.id = pre.event_id
		WHERE a.person1_id = $2
		ORDER BY fp.login, e.eventname`,
		login, callerID)
	if err != nil {
		return nil, newStore("friends_events", err)
	}
	defer rows.Close()

	out := []codec.FriendsEventsRow{}
	for rows.Next() {
		var r codec.FriendsEventsRow
		if err := rows.Scan(&r.Login, &r.EventName, &r.FriendLogin); err != nil {
			return nil, newStore("friends_events", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func scanTalkRows(rows pgx.Rows, op string) ([]codec.TalkRow, error) {
	defer rows.Close()
	out := []codec.TalkRow{}
	for rows.Next() {
		var r codec.TalkRow
		var ts time.Time
		if err := rows.Scan(&r.Talk, &ts, &r.Title, &r.Room); err != nil {
			return nil, newStore(op, err)
		}
		r.StartTimestamp = codec.OutTimestamp(ts)
		out = append(out, r)
	}
	return out, rows.Err()
}

func scanSpeakerTalkRows(rows pgx.Rows, op string) ([]codec.SpeakerTalkRow, error) {
	defer rows.Close()
	out := []codec.SpeakerTalkRow{}
	for rows.Next() {
		var r codec.SpeakerTalkRow
		var ts time.Time
		if err := rows.Scan(&r.Talk, &r.SpeakerLogin, &ts, &r.Title); err != nil {
			return nil, newStore(op, err)
		}
		r.StartTimestamp = codec.OutTimestamp(ts)
		out = append(out, r)
	}
	return out, rows.Err()
}
