package repository

const (
	createTaskQuery = `INSERT INTO tasks (task_id, kind, status, step, video_id, input_url, input_key,
		language, voice, output_refs, error_message, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	updateTaskQuery = `UPDATE tasks
		SET status = $2, step = $3, output_refs = $4, error_message = $5,
			started_at = $6, completed_at = $7
		WHERE task_id = $1`

	getTaskByIDQuery = `SELECT task_id, kind, status, step, video_id, input_url, input_key,
		language, voice, output_refs, error_message, submitted_at, started_at, completed_at
		FROM tasks WHERE task_id = $1`

	createVideoQuery = `INSERT INTO videos (video_id, task_id, file_name, source_url, s3_key, s3_bucket,
		storage_uri, file_size, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
		RETURNING *`

	updateVideoQuery = `UPDATE videos
		SET s3_key = $2, s3_bucket = $3, storage_uri = $4, file_size = $5, updated_at = now()
		WHERE video_id = $1`

	getVideoByIDQuery = `SELECT video_id, task_id, file_name, source_url, s3_key, s3_bucket,
		storage_uri, file_size, created_at, updated_at
		FROM videos WHERE video_id = $1`

	getTotalVideosCountQuery = `SELECT COUNT(video_id) FROM videos`

	getVideosQuery = `SELECT video_id, task_id, file_name, source_url, s3_key, s3_bucket,
		storage_uri, file_size, created_at, updated_at
		FROM videos ORDER BY created_at DESC OFFSET $1 LIMIT $2`
)
