// Package cassandra provides a plant table kept in a Cassandra keyspace.
package cassandra

import (
	"fmt"
	log "log/slog"
	"sync"
	"time"

	"github.com/gocql/gocql"
)

// DefaultKeyspace is used when Config.Keyspace is blank.
const DefaultKeyspace = "plantdb"

// Config contains configuration for connecting to a Cassandra cluster and the plantdb keyspace.
type Config struct {
	// ClusterHosts lists contact points for the Cassandra cluster.
	ClusterHosts []string
	// Keyspace is the keyspace holding the plants table.
	Keyspace string
	// Consistency is the default consistency level for queries.
	Consistency gocql.Consistency
	// ConnectionTimeout is the session connection timeout.
	ConnectionTimeout time.Duration
	// Authenticator is used when the cluster requires authentication.
	Authenticator gocql.Authenticator
	// ReplicationClause defines the keyspace replication (e.g., SimpleStrategy).
	ReplicationClause string

	// ConsistencyBook allows overriding per-API consistency levels.
	ConsistencyBook ConsistencyBook
}

// ConsistencyBook enumerates per-API consistency levels used by this package.
type ConsistencyBook struct {
	PlantAdd    gocql.Consistency
	PlantGet    gocql.Consistency
	PlantRemove gocql.Consistency
}

// Connection wraps a Cassandra session and its configuration.
type Connection struct {
	Session *gocql.Session
	Config
}

var connection *Connection
var mux sync.Mutex

// IsConnectionInstantiated reports whether a global Connection has been created.
func IsConnectionInstantiated() bool {
	return connection != nil
}

// OpenConnection returns the existing global Connection or opens a new one using the provided config.
// The keyspace and the plants table are created if missing.
func OpenConnection(config Config) (*Connection, error) {
	if connection != nil {
		return connection, nil
	}
	mux.Lock()
	defer mux.Unlock()

	if connection != nil {
		return connection, nil
	}
	config = withDefaults(config)

	cluster := gocql.NewCluster(config.ClusterHosts...)
	cluster.Consistency = config.Consistency
	if config.ConnectionTimeout > 0 {
		cluster.ConnectTimeout = config.ConnectionTimeout
	}
	if config.Authenticator != nil {
		cluster.Authenticator = config.Authenticator
		config.Authenticator = nil
	}
	log.Info("Opening Cassandra connection", "hosts", config.ClusterHosts, "keyspace", config.Keyspace)
	s, err := cluster.CreateSession()
	if err != nil {
		return nil, fmt.Errorf("cassandra create session failed: %w", err)
	}

	if err := s.Query(createKeyspaceStatement(config.Keyspace, config.ReplicationClause)).Exec(); err != nil {
		s.Close()
		return nil, fmt.Errorf("cassandra create keyspace %s failed: %w", config.Keyspace, err)
	}
	if err := s.Query(createTableStatement(config.Keyspace)).Exec(); err != nil {
		s.Close()
		return nil, fmt.Errorf("cassandra create table %s.%s failed: %w", config.Keyspace, tableName, err)
	}

	connection = &Connection{
		Session: s,
		Config:  config,
	}
	return connection, nil
}

// PasswordAuthenticator returns a gocql authenticator for username/password clusters,
// or nil when username is blank.
func PasswordAuthenticator(username, password string) gocql.Authenticator {
	if username == "" {
		return nil
	}
	return gocql.PasswordAuthenticator{
		Username: username,
		Password: password,
	}
}

// CloseConnection closes and clears the global connection, if it exists.
func CloseConnection() {
	if connection != nil {
		mux.Lock()
		defer mux.Unlock()
		if connection == nil {
			return
		}
		log.Info("Closing Cassandra connection")
		connection.Session.Close()
		connection = nil
	}
}

func withDefaults(config Config) Config {
	if config.Keyspace == "" {
		config.Keyspace = DefaultKeyspace
	}
	if config.Consistency == gocql.Any {
		// Defaults to LocalQuorum consistency. You should set it to an appropriate level.
		config.Consistency = gocql.LocalQuorum
	}
	if config.ReplicationClause == "" {
		config.ReplicationClause = "{'class':'SimpleStrategy', 'replication_factor':1}"
	}
	return config
}
