package codec

import "encoding/json"

type statusOnly struct {
	Status string `json:"status"`
}

type statusOKData struct {
	Status string `json:"status"`
	Data   any    `json:"data"`
}

// EncodeOK renders the empty-successful envelope for a command.
func EncodeOK() []byte {
	b, _ := json.Marshal(statusOnly{Status: "OK"})
	return b
}

// EncodeOKData renders the successful envelope for a query. rows must be a
// non-nil slice (possibly empty) so the wire always carries "data":[...]
// rather than omitting the key.
func EncodeOKData(rows any) []byte {
	b, _ := json.Marshal(statusOKData{Status: "OK", Data: rows})
	return b
}

// EncodeNotImplemented renders the envelope for a recognized-but-unbuilt
// operation (recommended_talks).
func EncodeNotImplemented() []byte {
	b, _ := json.Marshal(statusOnly{Status: "NOT IMPLEMENTED"})
	return b
}

// EncodeError renders the envelope for any failure. No detail ever reaches
// stdout.
func EncodeError() []byte {
	b, _ := json.Marshal(statusOnly{Status: "ERROR"})
	return b
}

// Row shapes for query results, in the field order the wire requires.

type UserPlanRow struct {
	Login          string       `json:"login"`
	Talk           string       `json:"talk"`
	StartTimestamp OutTimestamp `json:"start_timestamp"`
	Title          string       `json:"title"`
	Room           string       `json:"room"`
}

type TalkRow struct {
	Talk           string       `json:"talk"`
	StartTimestamp OutTimestamp `json:"start_timestamp"`
	Title          string       `json:"title"`
	Room           string       `json:"room"`
}

type AbandonedTalksRow struct {
	Talk           string       `json:"talk"`
	StartTimestamp OutTimestamp `json:"start_timestamp"`
	Title          string       `json:"title"`
	Room           string       `json:"room"`
	Number         int64        `json:"number"`
}

type RecentlyAddedTalksRow struct {
	Talk           string       `json:"talk"`
	SpeakerLogin   string       `json:"speakerlogin"`
	StartTimestamp OutTimestamp `json:"start_timestamp"`
	Title          string       `json:"title"`
	Room           string       `json:"room"`
}

type SpeakerTalkRow struct {
	Talk           string       `json:"talk"`
	SpeakerLogin   string       `json:"speakerlogin"`
	StartTimestamp OutTimestamp `json:"start_timestamp"`
	Title          string       `json:"title"`
}

type FriendsTalksRow struct {
	Talk           string       `json:"talk"`
	SpeakerLogin   string       `json:"speakerlogin"`
	StartTimestamp OutTimestamp `json:"start_timestamp"`
	Title          string       `json:"title"`
	Room           string       `json:"room"`
}

type FriendsEventsRow struct {
	Login       string `json:"login"`
	EventName   string `json:"eventname"`
	FriendLogin string `json:"friendlogin"`
}

type RecommendedTalksRow struct {
	Talk           string       `json:"talk"`
	SpeakerLogin   string       `json:"speakerlogin"`
	StartTimestamp OutTimestamp `json:"start_timestamp"`
	Title          string       `json:"title"`
	Room           string       `json:"room"`
	Score          float64      `json:"score"`
}
