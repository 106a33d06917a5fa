// Copyright 2025 The LaunchTune Authors. All rights reserved.
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dbbase

import (
	"fmt"
	"os"
	"strings"

	"xorm.io/xorm/log"
)

// maxLoggedArgLength is the longest string argument printed verbatim.
const maxLoggedArgLength = 128

// SQLLogger prints executed statements with their arguments substituted in,
// so a logged statement can be copied and run as is.
type SQLLogger struct {
	log.ContextLogger
}

// NewSQLLogger creates a SQLLogger writing to stdout.
func NewSQLLogger() *SQLLogger {
	return &SQLLogger{
		ContextLogger: log.NewLoggerAdapter(log.NewSimpleLogger(os.Stdout)),
	}
}

// AfterSQL overrides the default to substitute arguments into placeholders.
func (l *SQLLogger) AfterSQL(ctx log.LogContext) {
	var sessionPart string
	v := ctx.Ctx.Value(log.SessionIDKey)
	if key, ok := v.(string); ok {
		sessionPart = fmt.Sprintf(" [%s]", key)
	}

	sqlTemplate := strings.Replace(ctx.SQL, "?", "%v", -1)
	args := truncateStringArgs(ctx.Args)
	sql := fmt.Sprintf(sqlTemplate, args...)

	if ctx.ExecuteTime > 0 {
		l.Infof("[SQL]%s %s - %v", sessionPart, sql, ctx.ExecuteTime)
	} else {
		l.Infof("[SQL]%s %s", sessionPart, sql)
	}
}

func truncateStringArgs(args []interface{}) []interface{} {
	out := make([]interface{}, 0, len(args))
	for _, arg := range args {
		if s, ok := arg.(string); ok {
			if len(s) > maxLoggedArgLength {
				arg = "[...]"
			} else {
				arg = fmt.Sprintf(`"%v"`, s)
			}
		}
		out = append(out, arg)
	}
	return out
}
