// Package dispatch drives the read-decode-execute-encode loop of the
// request/response service.
package dispatch

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"go.jetify.com/typeid"

	"go-confcore/internal/codec"
	"go-confcore/internal/domain"
	"go-confcore/internal/session"
)

// Dispatcher reads request lines from in, routes them, and writes response
// lines to out, one per input line, until EOF.
type Dispatcher struct {
	session *session.Session
	out     *bufio.Writer
	log     zerolog.Logger
}

// New builds a Dispatcher over the given session and output stream.
func New(sess *session.Session, out io.Writer, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{session: sess, out: bufio.NewWriter(out), log: log}
}

// Run processes in until EOF, flushing each response line immediately so a
// hung downstream reader sees every line as it is produced. Returns nil on
// clean EOF; the spec requires exit status zero regardless of how many
// individual requests failed.
func (d *Dispatcher) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		d.handleLine(ctx, []byte(line))
	}
	return scanner.Err()
}

func (d *Dispatcher) handleLine(ctx context.Context, line []byte) {
	reqID, _ := typeid.WithPrefix("req")
	logger := d.log.With().Str("request_id", reqID.String()).Logger()

	req, err := codec.Decode(line)
	if err != nil {
		logger.Debug().Err(err).Msg("decode failed")
		d.write(codec.EncodeError())
		return
	}
	logger = logger.With().Str("op", req.Kind()).Logger()

	resp, err := d.route(ctx, req)
	if err != nil {
		logger.Debug().Err(err).Msg("request failed")
		d.write(codec.EncodeError())
		return
	}
	logger.Debug().Msg("request ok")
	d.write(resp)
}

func (d *Dispatcher) write(b []byte) {
	d.out.Write(b)
	d.out.WriteByte('\n')
	d.out.Flush()
}

// route invokes the session/command/query operation for req and returns the
// already-encoded response line. Every request other than open requires an
// already-open store first.
func (d *Dispatcher) route(ctx context.Context, req codec.Request) ([]byte, error) {
	if open, ok := req.(codec.OpenRequest); ok {
		if err := d.session.Open(ctx, open.Baza, open.Login, open.Password); err != nil {
			return nil, err
		}
		return codec.EncodeOK(), nil
	}

	store, err := d.session.Store()
	if err != nil {
		return nil, err
	}

	switch r := req.(type) {
	case codec.OrganizerRequest:
		if err := store.CreateOrganizer(ctx, r.NewLogin, r.NewPassword); err != nil {
			return nil, err
		}
		return codec.EncodeOK(), nil

	case codec.EventRequest:
		if err := store.CreateEvent(ctx, r.Login, r.Password, r.EventName,
			r.StartTimestamp.AsStart(), r.EndTimestamp.AsEnd()); err != nil {
			return nil, err
		}
		return codec.EncodeOK(), nil

	case codec.UserRequest:
		if err := store.CreateUser(ctx, r.Login, r.Password, r.NewLogin, r.NewPassword); err != nil {
			return nil, err
		}
		return codec.EncodeOK(), nil

	case codec.TalkRequest:
		err := store.RegisterOrAcceptTalk(ctx, domain.RegisterOrAcceptTalkParams{
			Login:             r.Login,
			Password:          r.Password,
			SpeakerLogin:      r.SpeakerLogin,
			Talk:              r.Talk,
			Title:             r.Title,
			StartTimestamp:    r.StartTimestamp.AsStart(),
			Room:              r.Room,
			InitialEvaluation: r.InitialEvaluation.Int(),
			EventName:         r.EventName,
		})
		if err != nil {
			return nil, err
		}
		return codec.EncodeOK(), nil

	case codec.RegisterUserForEventRequest:
		if err := store.RegisterUserForEvent(ctx, r.Login, r.Password, r.EventName); err != nil {
			return nil, err
		}
		return codec.EncodeOK(), nil

	case codec.AttendanceRequest:
		if err := store.Attendance(ctx, r.Login, r.Password, r.Talk); err != nil {
			return nil, err
		}
		return codec.EncodeOK(), nil

	case codec.EvaluationRequest:
		if err := store.Evaluation(ctx, r.Login, r.Password, r.Talk, r.Rating.Int()); err != nil {
			return nil, err
		}
		return codec.EncodeOK(), nil

	case codec.RejectRequest:
		if err := store.Reject(ctx, r.Login, r.Password, r.Talk); err != nil {
			return nil, err
		}
		return codec.EncodeOK(), nil

	case codec.ProposalRequest:
		if err := store.Proposal(ctx, r.Login, r.Password, r.Talk, r.Title, r.StartTimestamp.AsStart()); err != nil {
			return nil, err
		}
		return codec.EncodeOK(), nil

	case codec.FriendsRequest:
		if err := store.Friends(ctx, r.Login1, r.Password, r.Login2); err != nil {
			return nil, err
		}
		return codec.EncodeOK(), nil

	case codec.UserPlanRequest:
		rows, err := store.UserPlan(ctx, r.Login, r.Limit.Int())
		if err != nil {
			return nil, err
		}
		return codec.EncodeOKData(rows), nil

	case codec.DayPlanRequest:
		rows, err := store.DayPlan(ctx, r.Timestamp.T)
		if err != nil {
			return nil, err
		}
		return codec.EncodeOKData(rows), nil

	case codec.BestTalksRequest:
		rows, err := store.BestTalks(ctx, r.StartTimestamp.AsStart(), r.EndTimestamp.AsEnd(), r.Limit.Int(), r.All.Bool())
		if err != nil {
			return nil, err
		}
		return codec.EncodeOKData(rows), nil

	case codec.MostPopularTalksRequest:
		rows, err := store.MostPopularTalks(ctx, r.StartTimestamp.AsStart(), r.EndTimestamp.AsEnd(), r.Limit.Int())
		if err != nil {
			return nil, err
		}
		return codec.EncodeOKData(rows), nil

	case codec.AttendedTalksRequest:
		rows, err := store.AttendedTalks(ctx, r.Login, r.Password)
		if err != nil {
			return nil, err
		}
		return codec.EncodeOKData(rows), nil

	case codec.AbandonedTalksRequest:
		rows, err := store.AbandonedTalks(ctx, r.Login, r.Password, r.Limit.Int())
		if err != nil {
			return nil, err
		}
		return codec.EncodeOKData(rows), nil

	case codec.RecentlyAddedTalksRequest:
		rows, err := store.RecentlyAddedTalks(ctx, r.Limit.Int())
		if err != nil {
			return nil, err
		}
		return codec.EncodeOKData(rows), nil

	case codec.RejectedTalksRequest:
		rows, err := store.RejectedTalks(ctx, r.Login, r.Password)
		if err != nil {
			return nil, err
		}
		return codec.EncodeOKData(rows), nil

	case codec.ProposalsRequest:
		rows, err := store.Proposals(ctx, r.Login, r.Password)
		if err != nil {
			return nil, err
		}
		return codec.EncodeOKData(rows), nil

	case codec.FriendsTalksRequest:
		rows, err := store.FriendsTalks(ctx, r.Login, r.Password, r.StartTimestamp.AsStart(), r.EndTimestamp.AsEnd(), r.Limit.Int())
		if err != nil {
			return nil, err
		}
		return codec.EncodeOKData(rows), nil

	case codec.FriendsEventsRequest:
		rows, err := store.FriendsEvents(ctx, r.Login, r.Password, r.EventName)
		if err != nil {
			return nil, err
		}
		return codec.EncodeOKData(rows), nil

	case codec.RecommendedTalksRequest:
		return codec.EncodeNotImplemented(), nil

	default:
		return nil, errUnreachable
	}
}

// errUnreachable guards the type switch above against codec ever adding a
// Request variant without a matching case here.
var errUnreachable = errors.New("dispatch: unhandled request kind")
