package session

// checkScript and installScript are the schema bootstrap, applied on first
// open. checkScript probes whether the schema already exists; installScript
// creates it when the probe fails.

const checkScript = `SELECT 1 FROM persons LIMIT 1`

const installScript = `
CREATE TYPE talk_status AS ENUM ('Proposed', 'Accepted', 'Rejected');

CREATE TABLE persons (
	id            BIGSERIAL PRIMARY KEY,
	login         VARCHAR NOT NULL UNIQUE,
	password      TEXT NOT NULL,
	is_organizer  BOOLEAN NOT NULL DEFAULT false
);

CREATE TABLE events (
	id              BIGSERIAL PRIMARY KEY,
	eventname       TEXT NOT NULL UNIQUE,
	start_timestamp TIMESTAMP NOT NULL,
	end_timestamp   TIMESTAMP NOT NULL
);

CREATE TABLE talks (
	id              BIGSERIAL PRIMARY KEY,
	talk            TEXT NOT NULL UNIQUE,
	speaker_id      BIGINT NOT NULL REFERENCES persons(id),
	status          talk_status NOT NULL,
	title           TEXT NOT NULL,
	start_timestamp TIMESTAMP NOT NULL,
	room            TEXT,
	event_id        BIGINT REFERENCES events(id),
	modified_at     TIMESTAMP NOT NULL DEFAULT now()
);

CREATE TABLE person_registered_for_event (
	person_id BIGINT NOT NULL REFERENCES persons(id),
	event_id  BIGINT NOT NULL REFERENCES events(id),
	PRIMARY KEY (person_id, event_id)
);

CREATE TABLE person_attended_for_talk (
	person_id BIGINT NOT NULL REFERENCES persons(id),
	talk_id   BIGINT NOT NULL REFERENCES talks(id),
	PRIMARY KEY (person_id, talk_id)
);

CREATE TABLE person_rated_talk (
	person_id BIGINT NOT NULL REFERENCES persons(id),
	talk_id   BIGINT NOT NULL REFERENCES talks(id),
	rating    SMALLINT NOT NULL CHECK (rating BETWEEN 0 AND 10)
);

CREATE TABLE person_knows_person (
	person1_id BIGINT NOT NULL REFERENCES persons(id),
	person2_id BIGINT NOT NULL REFERENCES persons(id),
	PRIMARY KEY (person1_id, person2_id)
);
`
