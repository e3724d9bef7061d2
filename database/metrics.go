// Copyright 2025 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package database

import "github.com/prometheus/client_golang/prometheus"

const databaseMetricNamePrefix = "database_"

type databaseMetrics struct {
	inserts            *prometheus.CounterVec
	deletes            *prometheus.CounterVec
	sequenceRetries    prometheus.Counter
	sequenceConflicts  prometheus.Counter
	quotaFailures      prometheus.Counter
	attachmentBytes    prometheus.Counter
	issuanceDeletions  prometheus.Counter
}

func registerDatabaseMetrics(
	registry prometheus.Registerer,
) *databaseMetrics {
	m := &databaseMetrics{
		inserts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: databaseMetricNamePrefix + "documents_inserted_total",
				Help: "Total number of document records inserted",
			},
			[]string{"category"},
		),
		deletes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: databaseMetricNamePrefix + "documents_deleted_total",
				Help: "Total number of document records deleted",
			},
			[]string{"category"},
		),
		sequenceRetries: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: databaseMetricNamePrefix + "sequence_retries_total",
				Help: "Total number of sequence allocation retries after a conflict",
			},
		),
		sequenceConflicts: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: databaseMetricNamePrefix + "sequence_conflicts_total",
				Help: "Total number of inserts that exhausted sequence allocation retries",
			},
		),
		quotaFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: databaseMetricNamePrefix + "quota_failures_total",
				Help: "Total number of writes rejected for storage capacity exhaustion",
			},
		),
		attachmentBytes: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: databaseMetricNamePrefix + "attachment_bytes_total",
				Help: "Total attachment bytes written to the blob store",
			},
		),
		issuanceDeletions: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: databaseMetricNamePrefix + "issuance_deletions_total",
				Help: "Total number of issuance attachments deleted from records",
			},
		),
	}
	registry.MustRegister(
		m.inserts,
		m.deletes,
		m.sequenceRetries,
		m.sequenceConflicts,
		m.quotaFailures,
		m.attachmentBytes,
		m.issuanceDeletions,
	)
	return m
}
