package database

import (
	"context"
	"fmt"
	"log"
)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username VARCHAR(50) NOT NULL UNIQUE,
		email VARCHAR(100) NOT NULL UNIQUE,
		hashed_password VARCHAR(255) NOT NULL,
		created_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		title VARCHAR(200) NOT NULL,
		description TEXT,
		completed BOOLEAN NOT NULL DEFAULT 0,
		priority VARCHAR(10) DEFAULT 'medium',
		due_date DATETIME,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS tags (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		name VARCHAR(50) NOT NULL,
		color VARCHAR(7) DEFAULT '#3B82F6',
		created_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS task_tags (
		task_id INTEGER NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		tag_id INTEGER NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
		PRIMARY KEY (task_id, tag_id)
	)`,
	`CREATE TABLE IF NOT EXISTS conversations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS messages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		conversation_id INTEGER NOT NULL REFERENCES conversations(id) ON DELETE CASCADE,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		role VARCHAR(20) NOT NULL,
		content TEXT NOT NULL,
		created_at DATETIME NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS ix_tasks_user_id ON tasks(user_id)`,
	`CREATE INDEX IF NOT EXISTS ix_tasks_completed ON tasks(completed)`,
	`CREATE INDEX IF NOT EXISTS ix_tasks_priority ON tasks(priority)`,
	`CREATE INDEX IF NOT EXISTS ix_tags_user_id ON tags(user_id)`,
	`CREATE INDEX IF NOT EXISTS ix_task_tags_tag_id ON task_tags(tag_id)`,
	`CREATE INDEX IF NOT EXISTS ix_conversations_user_id ON conversations(user_id)`,
	`CREATE INDEX IF NOT EXISTS ix_messages_conversation_id ON messages(conversation_id)`,
	`CREATE INDEX IF NOT EXISTS ix_messages_user_id ON messages(user_id)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		username VARCHAR(50) NOT NULL UNIQUE,
		email VARCHAR(100) NOT NULL UNIQUE,
		hashed_password VARCHAR(255) NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		title VARCHAR(200) NOT NULL,
		description TEXT,
		completed BOOLEAN NOT NULL DEFAULT FALSE,
		priority VARCHAR(10) DEFAULT 'medium',
		due_date TIMESTAMP,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS tags (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		name VARCHAR(50) NOT NULL,
		color VARCHAR(7) DEFAULT '#3B82F6',
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS task_tags (
		task_id BIGINT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		tag_id BIGINT NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
		PRIMARY KEY (task_id, tag_id)
	)`,
	`CREATE TABLE IF NOT EXISTS conversations (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS messages (
		id BIGSERIAL PRIMARY KEY,
		conversation_id BIGINT NOT NULL REFERENCES conversations(id) ON DELETE CASCADE,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		role VARCHAR(20) NOT NULL,
		content TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS ix_tasks_user_id ON tasks(user_id)`,
	`CREATE INDEX IF NOT EXISTS ix_tasks_completed ON tasks(completed)`,
	`CREATE INDEX IF NOT EXISTS ix_tasks_priority ON tasks(priority)`,
	`CREATE INDEX IF NOT EXISTS ix_tags_user_id ON tags(user_id)`,
	`CREATE INDEX IF NOT EXISTS ix_task_tags_tag_id ON task_tags(tag_id)`,
	`CREATE INDEX IF NOT EXISTS ix_conversations_user_id ON conversations(user_id)`,
	`CREATE INDEX IF NOT EXISTS ix_messages_conversation_id ON messages(conversation_id)`,
	`CREATE INDEX IF NOT EXISTS ix_messages_user_id ON messages(user_id)`,
}

// MySQL has no CREATE INDEX IF NOT EXISTS, so indexes are declared
// inline with each table.
var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		username VARCHAR(50) NOT NULL,
		email VARCHAR(100) NOT NULL,
		hashed_password VARCHAR(255) NOT NULL,
		created_at DATETIME(6) NOT NULL,
		UNIQUE KEY ux_users_username (username),
		UNIQUE KEY ux_users_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT UNSIGNED NOT NULL,
		title VARCHAR(200) NOT NULL,
		description TEXT,
		completed TINYINT(1) NOT NULL DEFAULT 0,
		priority VARCHAR(10) DEFAULT 'medium',
		due_date DATETIME(6) NULL,
		created_at DATETIME(6) NOT NULL,
		updated_at DATETIME(6) NOT NULL,
		KEY ix_tasks_user_id (user_id),
		KEY ix_tasks_completed (completed),
		KEY ix_tasks_priority (priority),
		CONSTRAINT fk_tasks_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS tags (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT UNSIGNED NOT NULL,
		name VARCHAR(50) NOT NULL,
		color VARCHAR(7) DEFAULT '#3B82F6',
		created_at DATETIME(6) NOT NULL,
		KEY ix_tags_user_id (user_id),
		CONSTRAINT fk_tags_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS task_tags (
		task_id BIGINT UNSIGNED NOT NULL,
		tag_id BIGINT UNSIGNED NOT NULL,
		PRIMARY KEY (task_id, tag_id),
		KEY ix_task_tags_tag_id (tag_id),
		CONSTRAINT fk_task_tags_task FOREIGN KEY (task_id) REFERENCES tasks(id) ON DELETE CASCADE,
		CONSTRAINT fk_task_tags_tag FOREIGN KEY (tag_id) REFERENCES tags(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS conversations (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT UNSIGNED NOT NULL,
		created_at DATETIME(6) NOT NULL,
		updated_at DATETIME(6) NOT NULL,
		KEY ix_conversations_user_id (user_id),
		CONSTRAINT fk_conversations_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS messages (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		conversation_id BIGINT UNSIGNED NOT NULL,
		user_id BIGINT UNSIGNED NOT NULL,
		role VARCHAR(20) NOT NULL,
		content TEXT NOT NULL,
		created_at DATETIME(6) NOT NULL,
		KEY ix_messages_conversation_id (conversation_id),
		KEY ix_messages_user_id (user_id),
		CONSTRAINT fk_messages_conversation FOREIGN KEY (conversation_id) REFERENCES conversations(id) ON DELETE CASCADE,
		CONSTRAINT fk_messages_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

func schemaFor(k Kind) []string {
	switch k {
	case Postgres:
		return postgresSchema
	case MySQL:
		return mysqlSchema
	}
	return sqliteSchema
}

// Init creates every missing table and index. Existing structures are
// left alone, so it is safe to call on every start.
func (s *Store) Init(ctx context.Context) error {
	for _, stmt := range schemaFor(s.target.Kind) {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	log.Printf("database: tables created/verified")
	return nil
}
