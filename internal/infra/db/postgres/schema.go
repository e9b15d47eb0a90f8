package postgres

// Schema creates the tables this package reads and writes. cmd/seed and the
// integration tests apply it; it is idempotent.
const Schema = `
CREATE TABLE IF NOT EXISTS gifticons (
    id            TEXT PRIMARY KEY,
    user_id       TEXT NOT NULL,
    brand         TEXT NOT NULL,
    name          TEXT NOT NULL,
    category      TEXT NOT NULL,
    expires_at    TIMESTAMPTZ,
    used          BOOLEAN NOT NULL DEFAULT FALSE,
    registered_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_gifticons_user ON gifticons (user_id);
CREATE INDEX IF NOT EXISTS idx_gifticons_expiry ON gifticons (expires_at) WHERE NOT used;

CREATE TABLE IF NOT EXISTS gifticon_notifications (
    id             TEXT PRIMARY KEY,
    gifticon_id    TEXT NOT NULL,
    kind           TEXT NOT NULL,
    threshold_days INT  NOT NULL,
    sent_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
    UNIQUE (gifticon_id, kind, threshold_days)
);
`
