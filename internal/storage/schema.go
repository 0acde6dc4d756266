package storage

const schema = `
-- The 'answers' table records every quiz answer given during the current process.
CREATE TABLE IF NOT EXISTS answers (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    id TEXT NOT NULL UNIQUE,
    command TEXT NOT NULL,
    expected TEXT NOT NULL,
    guess TEXT NOT NULL,
    correct INTEGER NOT NULL,
    answered_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS answers_expected ON answers(expected);
`
