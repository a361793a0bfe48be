package policy

import (
	"net"
	"strconv"

	"github.com/go-sql-driver/mysql"

	"bi-demo/internal/domain"
)

// DSN returns the effective MySQL DSN for a rewritten data source and
// selected credential. Returns an empty string for non-MySQL sources, which
// the connecting layer treats as "use ambient authentication".
func DSN(ds domain.DataSource, cred domain.Credential) string {
	if ds.Kind != domain.SourceMySQL {
		return ""
	}
	mc := mysql.NewConfig()
	mc.Net = "tcp"
	mc.Addr = ds.Host
	if ds.Port != 0 {
		mc.Addr = net.JoinHostPort(ds.Host, strconv.Itoa(ds.Port))
	}
	mc.DBName = ds.Database
	if cred.Mode == domain.CredentialUsernamePassword {
		mc.User = cred.Username
		mc.Passwd = cred.Password
	}
	return mc.FormatDSN()
}
