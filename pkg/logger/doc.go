// Package logger builds *slog.Logger values through functional options and
// provides attribute helpers with stable key names for validation logs.
//
// New picks a text or JSON handler, applies static attributes and wraps the
// handler so that ContextExtractor callbacks can add request scoped values
// to every record.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithDevelopment("signup-api"),
//	    logger.WithContextValue("form", formKey),
//	)
//
//	log.DebugContext(ctx, "rule failed",
//	    logger.RuleKey("email"),
//	    logger.RuleKind("email"),
//	)
//
// Settings can also come from the environment (LOG_LEVEL, LOG_FORMAT,
// APP_ENV, APP_NAME):
//
//	cfg, err := logger.LoadConfig()
//	if err != nil {
//	    return err
//	}
//	log, err := logger.NewFromConfig(cfg)
//
// Error and Errors return an empty attribute for nil errors, so they can be
// passed unconditionally.
package logger
