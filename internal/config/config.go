package config

import (
	"github.com/volkante/student-job-market/library/pg"
	"github.com/volkante/student-job-market/library/yamlenv"
)

type Config struct {
	Postgres pg.PostgresConfig `yaml:"postgres"`
	Kafka    KafkaConfig       `yaml:"kafka"`
	Redis    RedisConfig       `yaml:"redis"`
	JobAPI   ApiConfig         `yaml:"jobAPI"`
}

type KafkaConfig struct {
	Bootstrap        *yamlenv.Env[string] `yaml:"bootstrap"`
	ProducerClientID *yamlenv.Env[string] `yaml:"producer_client_id"`
	Topics           struct {
		JobEvents *yamlenv.Env[string] `yaml:"job_events"`
	} `yaml:"topics"`
}

type RedisConfig struct {
	Enabled *yamlenv.Env[bool]   `yaml:"enabled"`
	Addr    *yamlenv.Env[string] `yaml:"addr"`
	DB      *yamlenv.Env[int]    `yaml:"db"`
}

type ApiConfig struct {
	Port *yamlenv.Env[int] `yaml:"port"`
}
