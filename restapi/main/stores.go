package main

import (
	"context"
	"fmt"
	log "log/slog"
	"os"
	"path"
	"time"

	"github.com/herbverse/plantdb"
	"github.com/herbverse/plantdb/aws_s3"
	"github.com/herbverse/plantdb/cassandra"
	"github.com/herbverse/plantdb/inmemory"
	"github.com/herbverse/plantdb/redis"
	"github.com/herbverse/plantdb/restapi"
)

type openedStore struct {
	store  plantdb.PlantStore
	export restapi.Exporter
	close  func()
}

// openStore connects the backend selected by config.Store.
func openStore(ctx context.Context, config plantdb.Config) (*openedStore, error) {
	switch config.Store {
	case plantdb.InMemory, "":
		return openInMemory(config.SeedFile)
	case plantdb.Redis:
		return openRedis(ctx, *config.Redis)
	case plantdb.Cassandra:
		return openCassandra(*config.Cassandra)
	case plantdb.S3:
		return openS3(ctx, *config.S3)
	}
	return nil, fmt.Errorf("unsupported store %q", config.Store)
}

func openInMemory(seedFile string) (*openedStore, error) {
	ps := inmemory.NewPlantStore()
	if seedFile != "" {
		ba, err := os.ReadFile(seedFile)
		if err != nil {
			return nil, fmt.Errorf("reading seed file failed: %w", err)
		}
		var seed []*plantdb.PlantRecord
		if err := plantdb.DefaultMarshaler.Unmarshal(ba, &seed); err != nil {
			return nil, fmt.Errorf("decoding seed file %s failed: %w", seedFile, err)
		}
		ps.Seed(seed...)
		log.Info("seeded in-memory plant store", "file", seedFile, "plants", ps.Count())
	}
	return &openedStore{store: ps, close: func() {}}, nil
}

func openRedis(ctx context.Context, config plantdb.RedisConfig) (*openedStore, error) {
	var conn *redis.Connection
	var err error
	if config.URL != "" {
		conn, err = redis.OpenConnectionWithURL(config.URL)
	} else {
		conn, err = redis.OpenConnection(redis.Options{
			Address:  config.Address,
			Password: config.Password,
			DB:       config.DB,
		})
	}
	if err != nil {
		return nil, err
	}
	ps, err := redis.NewPlantStore(conn, config.TableKey)
	if err == nil {
		err = ps.Ping(ctx)
	}
	if err != nil {
		redis.CloseConnection()
		return nil, err
	}
	return &openedStore{
		store: ps,
		close: func() {
			if err := redis.CloseConnection(); err != nil {
				log.Warn("closing redis connection failed", "error", err)
			}
		},
	}, nil
}

func openCassandra(config plantdb.CassandraConfig) (*openedStore, error) {
	conn, err := cassandra.OpenConnection(cassandra.Config{
		ClusterHosts:      config.ClusterHosts,
		Keyspace:          config.Keyspace,
		ConnectionTimeout: config.ConnectionTimeout,
		Authenticator:     cassandra.PasswordAuthenticator(config.Username, config.Password),
		ReplicationClause: config.ReplicationClause,
	})
	if err != nil {
		return nil, err
	}
	ps, err := cassandra.NewPlantStore(conn)
	if err != nil {
		cassandra.CloseConnection()
		return nil, err
	}
	return &openedStore{store: ps, close: cassandra.CloseConnection}, nil
}

func openS3(ctx context.Context, config plantdb.S3Config) (*openedStore, error) {
	s3Config := aws_s3.Config{
		HostEndpointURL: config.HostEndpointURL,
		Region:          config.Region,
		Username:        config.Username,
		Password:        config.Password,
		Bucket:          config.Bucket,
		Prefix:          config.Prefix,
	}
	client := aws_s3.Connect(s3Config)
	ps, err := aws_s3.NewPlantStore(client, s3Config)
	if err != nil {
		return nil, err
	}
	if err := ps.EnsureBucket(ctx); err != nil {
		return nil, err
	}
	uploader := aws_s3.NewSnapshotUploader(client)
	export := func(ctx context.Context, records []*plantdb.PlantRecord) error {
		key := path.Join(config.Prefix, "exports", fmt.Sprintf("catalog-%s.json", time.Now().UTC().Format("20060102T150405Z")))
		return aws_s3.ExportSnapshot(ctx, uploader, config.Bucket, key, records)
	}
	return &openedStore{store: ps, export: export, close: func() {}}, nil
}
