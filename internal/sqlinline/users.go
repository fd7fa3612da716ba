// Package sqlinline holds every SQL statement the repositories execute. Each
// constant starts with a "--sql <uuid>" marker so statements can be traced
// from server logs back to source; tools/sqllint enforces the convention.
package sqlinline

const QInsertUser = `--sql 0742e4bf-5d1a-4aae-bfef-14400c28891c
insert into users (id, email, name, user_type)
values ($1, $2, $3, $4)
returning id, email, name, user_type, created_at;
`

const QSelectUserByID = `--sql 2270174a-121f-4df9-93e0-9210c3d6a7c8
select id, email, name, user_type, created_at
from users
where id = $1
limit 1;
`

const QSelectUserByEmail = `--sql ea2f98de-f475-449d-85da-d8934c0d222e
select id, email, name, user_type, created_at
from users
where email = $1
limit 1;
`
