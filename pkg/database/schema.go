package database

// Schema is applied on startup. Statements are idempotent so restarts are safe.
//
// Note: episode (anime_id, season_number, number) is deliberately NOT unique;
// bulk season reassignment can create duplicate numbers within a season and
// whether that should become a hard constraint is still an open product
// question.
const Schema = `
CREATE TABLE IF NOT EXISTS anime (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  description TEXT,
  image_url TEXT,
  cover_url TEXT,
  tags TEXT, -- JSON array as text
  rating REAL NOT NULL DEFAULT 0,
  episodes INTEGER NOT NULL DEFAULT 0,
  type TEXT,
  status TEXT,
  sub INTEGER NOT NULL DEFAULT 0,
  dub INTEGER NOT NULL DEFAULT 0,
  duration TEXT,
  year INTEGER,
  studio TEXT,
  featured INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS episodes (
  id TEXT PRIMARY KEY,
  anime_id TEXT NOT NULL,
  number INTEGER NOT NULL,
  season_number INTEGER NOT NULL DEFAULT 1,
  title TEXT,
  image TEXT,
  is_filler INTEGER NOT NULL DEFAULT 0,
  provider_id TEXT,
  manual_source_url TEXT,
  source_type TEXT,
  use_manual_source INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_episodes_anime ON episodes(anime_id, season_number, number);
CREATE INDEX IF NOT EXISTS idx_episodes_provider ON episodes(provider_id);

CREATE TABLE IF NOT EXISTS hero_slides (
  id TEXT PRIMARY KEY,
  anime_id TEXT NOT NULL,
  video_url TEXT,
  poster_url TEXT,
  title TEXT,
  description TEXT,
  is_active INTEGER NOT NULL DEFAULT 1,
  position INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  username TEXT NOT NULL UNIQUE,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL DEFAULT 'user',
  created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS watch_history (
  user_id TEXT NOT NULL,
  anime_id TEXT NOT NULL,
  episode INTEGER NOT NULL DEFAULT 0,
  position_seconds REAL NOT NULL DEFAULT 0,
  title TEXT,
  image_url TEXT,
  updated_at TIMESTAMP NOT NULL,
  PRIMARY KEY (user_id, anime_id)
);

CREATE TABLE IF NOT EXISTS user_lists (
  user_id TEXT NOT NULL,
  anime_id TEXT NOT NULL,
  kind TEXT NOT NULL, -- watchlist | favorites
  title TEXT,
  image_url TEXT,
  type TEXT,
  rating REAL NOT NULL DEFAULT 0,
  added_at TIMESTAMP NOT NULL,
  PRIMARY KEY (user_id, anime_id, kind)
);
`
