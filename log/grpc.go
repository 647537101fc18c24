package log

import (
	"context"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc/grpclog"
)

// RouteGRPC sends the grpc library's internal logging to the logger of ctx,
// tagged with module "grpc". grpc info messages are demoted to debug.
func RouteGRPC(ctx context.Context) {
	grpclog.SetLoggerV2(&grpcLogger{entry: G(WithModule(ctx, "grpc"))})
}

type grpcLogger struct {
	entry *logrus.Entry
}

func (l *grpcLogger) Info(args ...interface{})                 { l.entry.Debug(args...) }
func (l *grpcLogger) Infoln(args ...interface{})               { l.entry.Debugln(args...) }
func (l *grpcLogger) Infof(format string, args ...interface{}) { l.entry.Debugf(format, args...) }

func (l *grpcLogger) Warning(args ...interface{})                 { l.entry.Warn(args...) }
func (l *grpcLogger) Warningln(args ...interface{})               { l.entry.Warnln(args...) }
func (l *grpcLogger) Warningf(format string, args ...interface{}) { l.entry.Warnf(format, args...) }

func (l *grpcLogger) Error(args ...interface{})                 { l.entry.Error(args...) }
func (l *grpcLogger) Errorln(args ...interface{})               { l.entry.Errorln(args...) }
func (l *grpcLogger) Errorf(format string, args ...interface{}) { l.entry.Errorf(format, args...) }

func (l *grpcLogger) Fatal(args ...interface{})                 { l.entry.Fatal(args...) }
func (l *grpcLogger) Fatalln(args ...interface{})               { l.entry.Fatalln(args...) }
func (l *grpcLogger) Fatalf(format string, args ...interface{}) { l.entry.Fatalf(format, args...) }

// V reports whether verbosity level is enabled. grpc levels 0-2 map onto
// logrus info, warning and error.
func (l *grpcLogger) V(level int) bool {
	switch {
	case level <= 0:
		return l.entry.Logger.IsLevelEnabled(logrus.InfoLevel)
	case level == 1:
		return l.entry.Logger.IsLevelEnabled(logrus.WarnLevel)
	default:
		return l.entry.Logger.IsLevelEnabled(logrus.ErrorLevel)
	}
}
