package session

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pumpstore-next/internal/logger"
	"github.com/pumpstore-next/internal/models"

	"github.com/glebarez/sqlite" // 纯 Go SQLite 驱动（基于 modernc.org/sqlite）
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var ErrNotAuthenticated = errors.New("session not authenticated")

// sessionRecordID 单会话存储：全表只有一行
const sessionRecordID = 1

// Record 持久化的会话记录（令牌 + 序列化身份）
type Record struct {
	ID           uint      `gorm:"primarykey"` // 固定为 1
	Token        string    `gorm:"not null"`   // 上游签发的认证令牌
	IdentityJSON string    `gorm:"not null"`   // UserIdentity 的 JSON 序列化
	CreatedAt    time.Time // 创建时间
	UpdatedAt    time.Time // 更新时间
}

// TableName 指定表名
func (Record) TableName() string {
	return "session_records"
}

// PoolConfig 会话库连接池配置
type PoolConfig struct {
	MaxOpenConns           int
	MaxIdleConns           int
	ConnMaxLifetimeSeconds int
	ConnMaxIdleTimeSeconds int
}

// Store 当前会话存储。持久化令牌与身份，进程内缓存当前值。
// 实现 api.TokenSource。
type Store struct {
	db       *gorm.DB
	token    string
	identity *models.UserIdentity
}

// Open 打开会话库并恢复持久化身份。损坏或过期的记录会被清除，
// 视同未登录，不向调用方报错。
func Open(driver, dsn string, pool PoolConfig) (*Store, error) {
	db, err := openDB(driver, dsn, pool)
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, fmt.Errorf("session migrate failed: %w", err)
	}
	store := &Store{db: db}
	store.hydrate()
	return store, nil
}

func openDB(driver, dsn string, pool PoolConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", "sqlite":
		dialector = sqlite.Open(dsn)
	case "postgres", "postgresql":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported session driver: %s", driver)
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	applyPool(sqlDB, pool)
	return db, nil
}

func applyPool(sqlDB *sql.DB, pool PoolConfig) {
	if pool.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns >= 0 {
		sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxLifetimeSeconds > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(pool.ConnMaxLifetimeSeconds) * time.Second)
	}
	if pool.ConnMaxIdleTimeSeconds > 0 {
		sqlDB.SetConnMaxIdleTime(time.Duration(pool.ConnMaxIdleTimeSeconds) * time.Second)
	}
}

// hydrate 从持久化记录恢复会话
func (s *Store) hydrate() {
	var record Record
	err := s.db.First(&record, sessionRecordID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return
	}
	if err != nil {
		logger.Warnw("session_hydrate_failed", "error", err)
		return
	}

	if strings.TrimSpace(record.Token) == "" {
		s.clearPersisted("empty_token")
		return
	}

	var identity models.UserIdentity
	if err := json.Unmarshal([]byte(record.IdentityJSON), &identity); err != nil || identity.ID == "" {
		s.clearPersisted("identity_parse_failed")
		return
	}

	if tokenExpired(record.Token) {
		s.clearPersisted("token_expired")
		return
	}

	s.token = record.Token
	s.identity = &identity
	logger.Debugw("session_hydrated", "user_id", identity.ID, "role", identity.Role)
}

// tokenExpired 令牌为带 exp 的 JWT 且已过期时返回 true。
// 签名校验归上游负责，这里只做本地过期短路；无法解析的令牌按不透明处理。
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	expiresAt, err := claims.GetExpirationTime()
	if err != nil || expiresAt == nil {
		return false
	}
	return expiresAt.Before(time.Now())
}

// SetIdentity 登录/注册成功后写入会话
func (s *Store) SetIdentity(token string, identity models.UserIdentity) error {
	if strings.TrimSpace(token) == "" || identity.ID == "" {
		return fmt.Errorf("invalid session identity")
	}
	payload, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("marshal identity failed: %w", err)
	}
	record := Record{
		ID:           sessionRecordID,
		Token:        token,
		IdentityJSON: string(payload),
	}
	if err := s.db.Save(&record).Error; err != nil {
		return fmt.Errorf("persist session failed: %w", err)
	}
	s.token = token
	identityCopy := identity
	s.identity = &identityCopy
	return nil
}

// Current 当前身份，未登录时返回 nil
func (s *Store) Current() *models.UserIdentity {
	return s.identity
}

// Token 当前令牌，未登录时为空串
func (s *Store) Token() string {
	return s.token
}

// Authenticated 是否已登录
func (s *Store) Authenticated() bool {
	return s.identity != nil && s.token != ""
}

// IsAdmin 当前身份是否为管理员
func (s *Store) IsAdmin() bool {
	return s.identity != nil && s.identity.IsAdmin
}

// Clear 登出：清除内存与持久化记录
func (s *Store) Clear() error {
	s.token = ""
	s.identity = nil
	if err := s.db.Delete(&Record{}, sessionRecordID).Error; err != nil {
		return fmt.Errorf("clear session failed: %w", err)
	}
	return nil
}

func (s *Store) clearPersisted(reason string) {
	logger.Warnw("session_record_discarded", "reason", reason)
	if err := s.db.Delete(&Record{}, sessionRecordID).Error; err != nil {
		logger.Errorw("session_clear_failed", "error", err)
	}
	s.token = ""
	s.identity = nil
}

// Close 关闭底层连接
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
