package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultConfig() *Config {
	return &Config{
		OwnerID: "default",
		Scheduler: SchedulerConfig{
			ReviewIntervals: []int{3, 7, 15, 30, 60},
		},
		Database: DatabaseConfig{
			Driver:          "mysql",
			Host:            "localhost",
			Port:            3306,
			Database:        "studyplan",
			Username:        "user",
			Path:            "studyplan.db",
			ConnectAttempts: 3,
		},
		Server: ServerConfig{
			Port: 8080,
			CORS: CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		},
		Reminder: ReminderConfig{At: "00:00"},
	}
}

func TestConfigLoader_Load(t *testing.T) {
	readableFile := filepath.Join(t.TempDir(), "syllabus.yml")
	require.NoError(t, os.WriteFile(readableFile, []byte("subjects: []\n"), 0644))

	tests := []struct {
		name              string
		configContent     string
		useExplicitPath   bool
		env               map[string]string
		want              func() *Config
		wantErrorContains []string
	}{
		{
			name: "no config file uses defaults",
			want: defaultConfig,
		},
		{
			name: "custom values",
			configContent: `owner_id: alice
timezone: UTC
scheduler:
  review_intervals: [1, 2, 4]
database:
  driver: sqlite3
  path: /tmp/alice.db
server:
  port: 9090
reminder:
  enabled: true
  at: "06:30"
  owners: [alice, bob]
syllabus:
  default_file: ` + readableFile + `
`,
			want: func() *Config {
				cfg := defaultConfig()
				cfg.OwnerID = "alice"
				cfg.Timezone = "UTC"
				cfg.Scheduler.ReviewIntervals = []int{1, 2, 4}
				cfg.Database.Driver = "sqlite3"
				cfg.Database.Path = "/tmp/alice.db"
				cfg.Server.Port = 9090
				cfg.Reminder = ReminderConfig{Enabled: true, At: "06:30", Owners: []string{"alice", "bob"}}
				cfg.Syllabus.DefaultFile = readableFile
				return cfg
			},
		},
		{
			name:            "explicit config file path",
			configContent:   "database:\n  host: db.example.com\n  port: 3307\n",
			useExplicitPath: true,
			want: func() *Config {
				cfg := defaultConfig()
				cfg.Database.Host = "db.example.com"
				cfg.Database.Port = 3307
				return cfg
			},
		},
		{
			name:          "environment variables",
			configContent: "owner_id: from-file\n",
			env:           map[string]string{"DB_PASSWORD": "secret", "STUDYPLAN_OWNER_ID": "from-env"},
			want: func() *Config {
				cfg := defaultConfig()
				cfg.OwnerID = "from-env"
				cfg.Database.Password = "secret"
				return cfg
			},
		},
		{
			name: "invalid YAML format",
			configContent: `scheduler:
  review_intervals: [3, 7
  invalid yaml format here [[[
`,
			wantErrorContains: []string{
				"configuration file found but could not be read",
				"Please check the file format and permissions",
			},
		},
		{
			name:              "non-positive review interval",
			configContent:     "scheduler:\n  review_intervals: [3, 0]\n",
			wantErrorContains: []string{"invalid configuration", "review_intervals[1]"},
		},
		{
			name:              "empty review intervals",
			configContent:     "scheduler:\n  review_intervals: []\n",
			wantErrorContains: []string{"invalid configuration", "review_intervals"},
		},
		{
			name:              "unknown driver",
			configContent:     "database:\n  driver: oracle\n",
			wantErrorContains: []string{"invalid configuration", "driver"},
		},
		{
			name:              "invalid reminder time",
			configContent:     "reminder:\n  at: midnight\n",
			wantErrorContains: []string{"reminder.at must be a clock time"},
		},
		{
			name:              "missing syllabus file",
			configContent:     "syllabus:\n  default_file: /does/not/exist.yml\n",
			wantErrorContains: []string{"syllabus.default_file must be an existing and readable file"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DB_PASSWORD", "")
			t.Setenv("STUDYPLAN_OWNER_ID", "")
			require.NoError(t, os.Unsetenv("DB_PASSWORD"))
			require.NoError(t, os.Unsetenv("STUDYPLAN_OWNER_ID"))
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			tempDir := t.TempDir()
			var configPath string
			if tt.useExplicitPath {
				configPath = filepath.Join(tempDir, "studyplan.yml")
				require.NoError(t, os.WriteFile(configPath, []byte(tt.configContent), 0644))
			} else {
				if tt.configContent != "" {
					require.NoError(t, os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(tt.configContent), 0644))
				}
				t.Chdir(tempDir)
			}

			loader, err := NewConfigLoader(configPath)
			require.NoError(t, err)
			got, err := loader.Load()

			if len(tt.wantErrorContains) > 0 {
				require.Error(t, err)
				assert.Nil(t, got)
				for _, wantMsg := range tt.wantErrorContains {
					assert.Contains(t, err.Error(), wantMsg)
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want(), got)
		})
	}
}

func TestConfig_IntervalTable(t *testing.T) {
	cfg := defaultConfig()
	table, err := cfg.IntervalTable()
	require.NoError(t, err)
	assert.Equal(t, 5, table.Len())

	cfg.Scheduler.ReviewIntervals = nil
	_, err = cfg.IntervalTable()
	assert.Error(t, err)
}

func TestConfigLoader_Load_DefaultTimezone(t *testing.T) {
	t.Chdir(t.TempDir())
	loader, err := NewConfigLoader("")
	require.NoError(t, err)
	cfg, err := loader.Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.Timezone)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Same(t, time.Local, loc)
}

func TestConfig_Location(t *testing.T) {
	cfg := defaultConfig()
	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Same(t, time.Local, loc)

	cfg.Timezone = "UTC"
	loc, err = cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())

	cfg.Timezone = "Mars/Olympus"
	_, err = cfg.Location()
	assert.Error(t, err)
}
