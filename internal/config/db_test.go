package config

import "testing"

func TestGetDatabaseDSN_FromEnvVars(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_USER", "testuser")
	t.Setenv("DB_PASSWORD", "testpass")
	t.Setenv("DB_HOST", "testhost")
	t.Setenv("DB_PORT", "3307")
	t.Setenv("DB_NAME", "testdb")

	dsn := GetDatabaseDSN()
	expected := "testuser:testpass@tcp(testhost:3307)/testdb?parseTime=true"

	if dsn != expected {
		t.Errorf("GetDatabaseDSN() = %v, want %v", dsn, expected)
	}
}

func TestGetDatabaseDSN_FromDatabaseDSNEnv(t *testing.T) {
	clearEnv(t)

	testDSN := "custom:dsn@tcp(custom:3306)/floodaid?parseTime=true"
	t.Setenv("DATABASE_DSN", testDSN)

	if dsn := GetDatabaseDSN(); dsn != testDSN {
		t.Errorf("GetDatabaseDSN() = %v, want %v", dsn, testDSN)
	}
}

func TestGetDatabaseDSN_Unset(t *testing.T) {
	clearEnv(t)

	if dsn := GetDatabaseDSN(); dsn != "" {
		t.Errorf("GetDatabaseDSN() = %v, want empty", dsn)
	}
}

func TestGetDatabaseDSN_PartialEnvVars(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_USER", "testuser")
	t.Setenv("DB_PASSWORD", "testpass")
	t.Setenv("DATABASE_DSN", "fallback:dsn@tcp(db:3306)/floodaid")

	if dsn := GetDatabaseDSN(); dsn != "fallback:dsn@tcp(db:3306)/floodaid" {
		t.Errorf("GetDatabaseDSN() = %v, want the DATABASE_DSN fallback", dsn)
	}
}
