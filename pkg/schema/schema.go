// Package schema documents the entity field catalogs of the analytical
// data store. These are pure data declarations: one struct per relation,
// with db tags naming the columns exactly as they appear in the partitioned
// datasets. Field names and semantics are fixed for downstream consumers.
package schema

// Run is one experimental MS acquisition within a batch.
type Run struct {
	MSRunID    string `db:"msrun_id"`    // run identifier, partition key
	BatchID    string `db:"batch_id"`    // acquisition batch
	SampleName string `db:"sample_name"` // submitted sample label
	Instrument string `db:"instrument"`  // instrument model
	Method     string `db:"method"`      // acquisition method name
	AcquiredAt string `db:"acquired_at"` // acquisition timestamp, ISO 8601
}

// Frame is a frame-by-frame overview of one run: all spectra acquired at
// one retention time, per MS level.
type Frame struct {
	MSRunID         string  `db:"msrun_id"`
	FrameID         int64   `db:"frame_id"`
	RT              float64 `db:"rt"`       // retention time, seconds
	MSLevel         int     `db:"ms_level"` // 1 or 2
	NumSignals      int64   `db:"n_signals"`
	SummedIntensity float64 `db:"summed_intensity"`
	MaxIntensity    float64 `db:"max_intensity"`
}

// MS1Signal is a single MS1 data point.
type MS1Signal struct {
	MSRunID            string  `db:"msrun_id"`
	FrameID            int64   `db:"frame_id"`
	RT                 float64 `db:"rt"`
	ScanID             int     `db:"scan_id"` // mobility scan index within the frame
	TOFID              int     `db:"tof_id"`  // time-of-flight bin index
	MZ                 float64 `db:"mz"`
	Intensity          float64 `db:"intensity"`
	CorrectedIntensity float64 `db:"corrected_intensity"` // after baseline/detector correction
}

// XIC is one point of an extracted ion chromatogram: intensity summed over
// a mass cluster at one retention time.
type XIC struct {
	MSRunID         string  `db:"msrun_id"`
	ClusterID       int64   `db:"cluster_id"` // mass cluster identifier
	RT              float64 `db:"rt"`
	MZ              float64 `db:"mz"` // cluster centroid m/z
	SummedIntensity float64 `db:"summed_intensity"`
}

// Peak is a detected feature: a local intensity maximum with its apex
// coordinates.
type Peak struct {
	MSRunID   string  `db:"msrun_id"`
	FeatureID int64   `db:"feature_id"`
	MZ        float64 `db:"mz"` // apex m/z
	RT        float64 `db:"rt"` // apex retention time, seconds
	ScanID    int     `db:"scan_id"`
	TOFID     int     `db:"tof_id"`
	Intensity float64 `db:"intensity"` // apex intensity
}

// MSMS is a tandem-MS fragmentation event: isolation and collision-induced
// breakdown of a precursor ion.
type MSMS struct {
	MSRunID         string  `db:"msrun_id"`
	MSMSID          int64   `db:"msms_id"`
	FrameID         int64   `db:"frame_id"`
	RT              float64 `db:"rt"`
	PrecursorMZ     float64 `db:"precursor_mz"`
	IsolationWidth  float64 `db:"isolation_width"` // isolation window width, m/z
	CollisionEnergy float64 `db:"collision_energy"`
}

// PeakMSMS links a feature to a fragmentation event that sampled it.
type PeakMSMS struct {
	MSRunID   string `db:"msrun_id"`
	FeatureID int64  `db:"feature_id"`
	MSMSID    int64  `db:"msms_id"`
}

// MS2Signal is a single MS2 (fragment ion) data point.
type MS2Signal struct {
	MSRunID   string  `db:"msrun_id"`
	MSMSID    int64   `db:"msms_id"`
	ScanID    int     `db:"scan_id"`
	MZ        float64 `db:"mz"`
	Intensity float64 `db:"intensity"`
}
