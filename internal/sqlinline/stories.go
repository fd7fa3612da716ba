package sqlinline

const QInsertStory = `--sql 46846ca7-d1d5-4e6a-acb9-cda008fb44ee
insert into stories (id, artisan_id, title, content, audio_url, video_url)
values ($1, $2, $3, $4, nullif($5, ''), nullif($6, ''))
returning id, artisan_id, title, content, coalesce(audio_url, ''), coalesce(video_url, ''), created_at;
`

const QSelectRecentStories = `--sql f439e871-41d5-42e4-b1f1-d86d91157065
select id, artisan_id, title, content, coalesce(audio_url, ''), coalesce(video_url, ''), created_at
from stories
order by created_at desc
limit $1;
`

const QSelectStoriesByArtisan = `--sql 04dce446-458b-4233-a02e-b33917062b64
select id, artisan_id, title, content, coalesce(audio_url, ''), coalesce(video_url, ''), created_at
from stories
where artisan_id = $1
order by created_at desc
limit $2;
`
