package codec

// Request is the discriminated set of request shapes. Each concrete type
// below corresponds to exactly one top-level JSON key; Kind returns that
// key so the dispatcher can log it without a type switch.
type Request interface {
	Kind() string
}

type OpenRequest struct {
	Baza     string `json:"baza"`
	Login    string `json:"login"`
	Password string `json:"password"`
}

func (OpenRequest) Kind() string { return "open" }

type OrganizerRequest struct {
	Secret      string `json:"secret"`
	NewLogin    string `json:"newlogin"`
	NewPassword string `json:"newpassword"`
}

func (OrganizerRequest) Kind() string { return "organizer" }

type EventRequest struct {
	Login          string        `json:"login"`
	Password       string        `json:"password"`
	EventName      string        `json:"eventname"`
	StartTimestamp FlexTimestamp `json:"start_timestamp"`
	EndTimestamp   FlexTimestamp `json:"end_timestamp"`
}

func (EventRequest) Kind() string { return "event" }

type UserRequest struct {
	Login       string `json:"login"`
	Password    string `json:"password"`
	NewLogin    string `json:"newlogin"`
	NewPassword string `json:"newpassword"`
}

func (UserRequest) Kind() string { return "user" }

type TalkRequest struct {
	Login             string        `json:"login"`
	Password          string        `json:"password"`
	SpeakerLogin      string        `json:"speakerlogin"`
	Talk              string        `json:"talk"`
	Title             string        `json:"title"`
	StartTimestamp    FlexTimestamp `json:"start_timestamp"`
	Room              string        `json:"room"`
	InitialEvaluation FlexInt       `json:"initial_evaluation"`
	EventName         string        `json:"eventname"`
}

func (TalkRequest) Kind() string { return "talk" }

type RegisterUserForEventRequest struct {
	Login     string `json:"login"`
	Password  string `json:"password"`
	EventName string `json:"eventname"`
}

func (RegisterUserForEventRequest) Kind() string { return "register_user_for_event" }

type AttendanceRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	Talk     string `json:"talk"`
}

func (AttendanceRequest) Kind() string { return "attendance" }

type EvaluationRequest struct {
	Login    string  `json:"login"`
	Password string  `json:"password"`
	Talk     string  `json:"talk"`
	Rating   FlexInt `json:"rating"`
}

func (EvaluationRequest) Kind() string { return "evaluation" }

type RejectRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	Talk     string `json:"talk"`
}

func (RejectRequest) Kind() string { return "reject" }

type ProposalRequest struct {
	Login          string        `json:"login"`
	Password       string        `json:"password"`
	Talk           string        `json:"talk"`
	Title          string        `json:"title"`
	StartTimestamp FlexTimestamp `json:"start_timestamp"`
}

func (ProposalRequest) Kind() string { return "proposal" }

type FriendsRequest struct {
	Login1   string `json:"login1"`
	Password string `json:"password"`
	Login2   string `json:"login2"`
}

func (FriendsRequest) Kind() string { return "friends" }

type UserPlanRequest struct {
	Login string  `json:"login"`
	Limit FlexInt `json:"limit"`
}

func (UserPlanRequest) Kind() string { return "user_plan" }

type DayPlanRequest struct {
	Timestamp DateOnly `json:"timestamp"`
}

func (DayPlanRequest) Kind() string { return "day_plan" }

type BestTalksRequest struct {
	StartTimestamp FlexTimestamp `json:"start_timestamp"`
	EndTimestamp   FlexTimestamp `json:"end_timestamp"`
	Limit          FlexInt       `json:"limit"`
	All            FlexBool      `json:"all"`
}

func (BestTalksRequest) Kind() string { return "best_talks" }

type MostPopularTalksRequest struct {
	StartTimestamp FlexTimestamp `json:"start_timestamp"`
	EndTimestamp   FlexTimestamp `json:"end_timestamp"`
	Limit          FlexInt       `json:"limit"`
}

func (MostPopularTalksRequest) Kind() string { return "most_popular_talks" }

type AttendedTalksRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

func (AttendedTalksRequest) Kind() string { return "attended_talks" }

type AbandonedTalksRequest struct {
	Login    string  `json:"login"`
	Password string  `json:"password"`
	Limit    FlexInt `json:"limit"`
}

func (AbandonedTalksRequest) Kind() string { return "abandoned_talks" }

type RecentlyAddedTalksRequest struct {
	Limit FlexInt `json:"limit"`
}

func (RecentlyAddedTalksRequest) Kind() string { return "recently_added_talks" }

type RejectedTalksRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

func (RejectedTalksRequest) Kind() string { return "rejected_talks" }

type ProposalsRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

func (ProposalsRequest) Kind() string { return "proposals" }

type FriendsTalksRequest struct {
	Login          string        `json:"login"`
	Password       string        `json:"password"`
	StartTimestamp FlexTimestamp `json:"start_timestamp"`
	EndTimestamp   FlexTimestamp `json:"end_timestamp"`
	Limit          FlexInt       `json:"limit"`
}

func (FriendsTalksRequest) Kind() string { return "friends_talks" }

type FriendsEventsRequest struct {
	Login     string `json:"login"`
	Password  string `json:"password"`
	EventName string `json:"eventname"`
}

func (FriendsEventsRequest) Kind() string { return "friends_events" }

type RecommendedTalksRequest struct {
	Login          string        `json:"login"`
	Password       string        `json:"password"`
	StartTimestamp FlexTimestamp `json:"start_timestamp"`
	EndTimestamp   FlexTimestamp `json:"end_timestamp"`
	Limit          FlexInt       `json:"limit"`
}

func (RecommendedTalksRequest) Kind() string { return "recommended_talks" }
