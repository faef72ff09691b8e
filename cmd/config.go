package cmd

import (
	"errors"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"streamlens.dev/pkg/streamlens/internal/domain"
	"streamlens.dev/pkg/streamlens/internal/telemetry"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "streamlens"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	probesFlagName   = "probes"
	eventsFlagName   = "events"
	codecFlagName    = "codec"
	verboseFlagName  = "verbose"
	parallelFlagName = "parallel"
	addrFlagName     = "addr"
	prefixFlagName   = "prefix"
	urlFlagName      = "url"

	operatorsConfigKey         = "locator.operators"
	probesConfigKey            = "probes.file"
	collectorAddrConfigKey     = "collector.addr"
	collectorCodecConfigKey    = "collector.codec"
	transportURLConfigKey      = "transport.url"
	writeTimeoutConfigKey      = "transport.write_timeout"
	reconnectIntervalConfigKey = "transport.reconnect_interval"
	prefixesConfigKey          = "correlate.prefixes"
	eventsConfigKey            = "events.dir"
	listParallelConfigKey      = "list.parallel"

	defaultProbesFile        = ".streamlens-probes.yaml"
	defaultEventsDir         = ".streamlens"
	defaultCodec             = telemetry.CodecJSON
	defaultWriteTimeout      = "5s"
	defaultReconnectInterval = "1s"
	defaultListParallel      = 4

	envPrefix = "STREAMLENS"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".streamlens.log"
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

// defaultOperators is the operator allow-list written by init.
var defaultOperators = []string{
	"Map", "Filter", "Take", "Tap", "StartWith", "DistinctUntilChanged", "MergeMap", "SwitchMap",
}

var globalLogger *slog.Logger

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(operatorsConfigKey, defaultOperators)
	viper.SetDefault(probesConfigKey, defaultProbesFile)
	viper.SetDefault(collectorAddrConfigKey, telemetry.DefaultAddr)
	viper.SetDefault(collectorCodecConfigKey, defaultCodec)
	viper.SetDefault(transportURLConfigKey, telemetry.DefaultURL)
	viper.SetDefault(writeTimeoutConfigKey, defaultWriteTimeout)
	viper.SetDefault(reconnectIntervalConfigKey, defaultReconnectInterval)
	viper.SetDefault(prefixesConfigKey, domain.DefaultBundlerPrefixes)
	viper.SetDefault(eventsConfigKey, defaultEventsDir)
	viper.SetDefault(listParallelConfigKey, defaultListParallel)

	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return
		}

		slog.Warn("failed to read config file", "file", viper.ConfigFileUsed(), "error", err)
	}
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Numeric slog levels are accepted too (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger points the global slog logger at a rotating log file.
//
// It logs at the configured level, or at Debug when verbose is true.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	var logLevel slog.Level
	if verbose {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}
