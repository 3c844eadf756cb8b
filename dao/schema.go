package dao

// SchemaDDL is the full DDL for a fresh report-mapper database. Exposed so
// the schema subcommand can print it for operators.
const SchemaDDL = `
create table if not exists observation
(
    id varchar(64) not null
    ,title varchar(255) not null
    ,description text not null
    ,latitude double not null
    ,longitude double not null
    ,observedDate timestamp not null default current_timestamp
    ,ownedBy varchar(255) not null
    ,published boolean not null default 0
    ,createdDate timestamp not null default current_timestamp
    ,modifiedDate timestamp not null default current_timestamp on update current_timestamp
    ,primary key (id)
    ,index ix_observation_ownedBy (ownedBy)
    ,index ix_observation_published (published)
);

create table if not exists image
(
    id varchar(64) not null
    ,ownedBy varchar(255) not null
    ,fileName varchar(255) not null
    ,contentType varchar(255) not null
    ,contentSize bigint not null default 0
    ,storageKey varchar(255) not null
    ,observationId varchar(64) null
    ,createdDate timestamp not null default current_timestamp
    ,primary key (id)
    ,index ix_image_ownedBy (ownedBy)
    ,index ix_image_observationId (observationId)
);

create table if not exists object_permission
(
    id varchar(64) not null
    ,objectType varchar(32) not null
    ,objectId varchar(64) not null
    ,granteeType varchar(8) not null
    ,grantee varchar(255) not null
    ,permission varchar(16) not null
    ,createdDate timestamp not null default current_timestamp
    ,primary key (id)
    ,index ix_object_permission_object (objectType, objectId)
    ,index ix_object_permission_grantee (objectType, objectId, granteeType, grantee)
);
`
